package counters

import (
	"context"
	stderrors "errors"
	"fmt"
	"net"
	"strings"

	"github.com/rileyhilliard/netbwmon/internal/errors"
)

// netInterfaces is swapped in tests.
var netInterfaces = net.Interfaces

// detectLocal returns the first interface, in OS order, that is up, running
// and not a loopback, and that the source also reports counters for.
func detectLocal(ctx context.Context, src Source) (string, error) {
	ifaces, err := netInterfaces()
	if err != nil {
		return "", fmt.Errorf("list network interfaces: %w", err)
	}
	list, err := src.List(ctx)
	if err != nil {
		return "", err
	}

	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagRunning == 0 {
			continue
		}
		if iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		if _, ok := Find(list, iface.Name); ok {
			return iface.Name, nil
		}
	}
	return "", ErrNotFound
}

// detectFirstNonLoopback is used where interface flags aren't available.
func detectFirstNonLoopback(list []Interface) (string, error) {
	for _, iface := range list {
		if !strings.HasPrefix(iface.Name, "lo") {
			return iface.Name, nil
		}
	}
	return "", ErrNotFound
}

// Resolve settles which interface to monitor. An explicit name must be
// listed by the source; an empty name triggers detection. Failures are
// reported as InterfaceNotFound.
func Resolve(ctx context.Context, src Source, name string) (string, error) {
	if name == "" {
		detected, err := src.Detect(ctx)
		if err != nil {
			return "", errors.InterfaceNotFound("", err)
		}
		return detected, nil
	}

	list, err := src.List(ctx)
	if err != nil {
		return "", errors.InterfaceNotFound(name, err)
	}
	if _, ok := Find(list, name); !ok {
		return "", errors.InterfaceNotFound(name, fmt.Errorf("%s does not report it: %w", src.Describe(), ErrNotFound))
	}
	return name, nil
}

// IsNotFound reports whether err means the interface is gone.
func IsNotFound(err error) bool {
	return stderrors.Is(err, ErrNotFound)
}
