package counters

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"
)

// ParseNetDev parses Linux /proc/net/dev content.
//
// Format after two header lines:
//
//	iface: rx_bytes rx_packets errs drop fifo frame compressed multicast tx_bytes tx_packets ...
func ParseNetDev(content string) ([]Interface, error) {
	var interfaces []Interface
	scanner := bufio.NewScanner(strings.NewReader(content))

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		if lineNum <= 2 {
			continue
		}

		parts := strings.SplitN(scanner.Text(), ":", 2)
		if len(parts) != 2 {
			continue
		}

		name := strings.TrimSpace(parts[0])
		fields := strings.Fields(parts[1])
		// 8 receive + 8 transmit columns
		if name == "" || len(fields) < 16 {
			continue
		}

		var vals [4]uint64
		for i, idx := range []int{0, 1, 8, 9} {
			v, err := strconv.ParseUint(fields[idx], 10, 64)
			if err != nil {
				return nil, fmt.Errorf("failed to parse column %d for %s: %w", idx+1, name, err)
			}
			vals[i] = v
		}

		interfaces = append(interfaces, Interface{
			Name:      name,
			RxBytes:   vals[0],
			RxPackets: vals[1],
			TxBytes:   vals[2],
			TxPackets: vals[3],
		})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error scanning net/dev: %w", err)
	}
	if lineNum < 2 {
		return nil, fmt.Errorf("net/dev content is missing its header")
	}

	return interfaces, nil
}

// ParseNetstat parses BSD/macOS `netstat -ibn` output, keeping the link-level
// row of each interface (the one whose network column is <Link#N>).
//
//	Name  Mtu   Network     Address            Ipkts Ierrs  Ibytes  Opkts Oerrs  Obytes  Coll
//	en0   1500  <Link#4>    aa:bb:cc:dd:ee:ff  12345     0 1234567  67890     0  987654     0
func ParseNetstat(output string) ([]Interface, error) {
	var interfaces []Interface
	scanner := bufio.NewScanner(strings.NewReader(output))

	headerSeen := false
	seen := make(map[string]bool)

	for scanner.Scan() {
		line := scanner.Text()
		if !headerSeen {
			headerSeen = strings.HasPrefix(line, "Name")
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 8 {
			continue
		}

		name := strings.TrimSuffix(fields[0], "*")
		if seen[name] || !strings.HasPrefix(fields[2], "<Link#") {
			continue
		}

		// Counting from the right is stable whether or not the address column
		// is empty: ... Ipkts Ierrs Ibytes Opkts Oerrs Obytes [Coll]
		nums := fields[3:]
		if strings.Contains(nums[0], ":") || !isNumber(nums[0]) {
			nums = nums[1:]
		}
		if len(nums) < 6 {
			continue
		}

		var vals [6]uint64
		ok := true
		for i := 0; i < 6; i++ {
			v, err := strconv.ParseUint(nums[i], 10, 64)
			if err != nil {
				ok = false
				break
			}
			vals[i] = v
		}
		if !ok {
			continue
		}

		seen[name] = true
		interfaces = append(interfaces, Interface{
			Name:      name,
			RxPackets: vals[0],
			RxBytes:   vals[2],
			TxPackets: vals[3],
			TxBytes:   vals[5],
		})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error scanning netstat output: %w", err)
	}
	if !headerSeen {
		return nil, fmt.Errorf("netstat output is missing its header")
	}

	return interfaces, nil
}

func isNumber(s string) bool {
	_, err := strconv.ParseUint(s, 10, 64)
	return err == nil
}
