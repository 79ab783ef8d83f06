package monitor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewInterfaceState(t *testing.T) {
	st := NewInterfaceState("enp0s31f6-very-long-name", 8)

	assert.Equal(t, "enp0s31f6-very-", st.Name)
	assert.Len(t, st.Name, MaxInterfaceName)
	assert.Equal(t, 8, st.Size())
	assert.Equal(t, st.Rx.Len(), st.Tx.Len())
}

func TestInterfaceStateAccept(t *testing.T) {
	st := NewInterfaceState("eth0", 4)
	st.Accept(100, 10)
	st.Accept(300, 30)

	assert.Equal(t, uint64(100), st.RxAvg)
	assert.Equal(t, uint64(10), st.TxAvg)
	assert.Equal(t, uint64(300), st.RxMax)
	assert.Equal(t, uint64(30), st.TxMax)
}

func TestInterfaceStateResize_RecomputesMax(t *testing.T) {
	st := NewInterfaceState("eth0", 4)
	st.Accept(1000, 50)
	st.Accept(10, 5)
	st.Accept(20, 6)
	assert.Equal(t, uint64(1000), st.RxMax)

	st.Resize(2)

	assert.Equal(t, 2, st.Size())
	assert.Equal(t, 2, st.Tx.Len())
	assert.Equal(t, uint64(20), st.RxMax, "the dropped peak no longer counts")
	assert.Equal(t, uint64(6), st.TxMax)
	assert.Equal(t, uint64(15), st.RxAvg)
	for _, v := range st.Rx.Values() {
		assert.LessOrEqual(t, v, st.RxMax)
	}
}
