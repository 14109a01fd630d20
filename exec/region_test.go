package exec

import (
	"errors"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/colorfulnotion/calcjit/jiterrors"
)

type transition struct{ from, to State }

func recordTransitions(r *Region) *[]transition {
	var seen []transition
	r.OnTransition = func(from, to State) { seen = append(seen, transition{from, to}) }
	return &seen
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "writable", Writable.String())
	assert.Equal(t, "read-only", ReadOnly.String())
	assert.Equal(t, "executable", Executable.String())
	assert.Equal(t, "released", Released.String())
	assert.Equal(t, "State(9)", State(9).String())

	assert.Equal(t, "rw-", Writable.prot().String())
	assert.Equal(t, "r--", ReadOnly.prot().String())
	assert.Equal(t, "r-x", Executable.prot().String())
}

func TestRegionLifecycle(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := NewMockMapper(ctrl)
	mem := make([]byte, 4096)

	gomock.InOrder(
		m.EXPECT().Map(3).Return(mem, nil),
		m.EXPECT().Protect(mem, ProtRead).Return(nil),
		m.EXPECT().Protect(mem, ProtRead|ProtExec).Return(nil),
		m.EXPECT().Unmap(mem).Return(nil),
	)

	r, err := NewRegion(m, 3)
	require.NoError(t, err)
	seen := recordTransitions(r)
	assert.Equal(t, Writable, r.State())
	assert.Equal(t, 4096, r.Len())

	require.NoError(t, r.Write([]byte{1, 2, 3}))
	assert.Equal(t, []byte{1, 2, 3}, mem[:3])
	require.NoError(t, r.Seal())
	require.NoError(t, r.MakeExecutable())
	entry, err := r.entry()
	require.NoError(t, err)
	assert.Equal(t, &mem[0], entry)

	require.NoError(t, r.Release())
	require.NoError(t, r.Release())
	assert.Equal(t, Released, r.State())
	assert.Equal(t, []transition{
		{Writable, ReadOnly},
		{ReadOnly, Executable},
		{Executable, Released},
	}, *seen)
}

func TestRegionIllegalTransitions(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := NewMockMapper(ctrl)
	mem := make([]byte, 64)
	m.EXPECT().Map(8).Return(mem, nil)
	m.EXPECT().Protect(mem, ProtRead).Return(nil)
	m.EXPECT().Unmap(mem).Return(nil)

	r, err := NewRegion(m, 8)
	require.NoError(t, err)

	// cannot skip the read-only step
	err = r.MakeExecutable()
	assert.ErrorIs(t, err, jiterrors.ErrRegionState)
	_, err = r.entry()
	assert.ErrorIs(t, err, jiterrors.ErrRegionState)

	require.NoError(t, r.Seal())
	assert.ErrorIs(t, r.Write([]byte{0xC3}), jiterrors.ErrRegionState)
	assert.ErrorIs(t, r.Seal(), jiterrors.ErrRegionState)
	assert.Equal(t, ReadOnly, r.State())

	require.NoError(t, r.Release())
	assert.ErrorIs(t, r.Write(nil), jiterrors.ErrRegionState)
	assert.ErrorIs(t, r.Seal(), jiterrors.ErrRegionState)
	assert.ErrorIs(t, r.MakeExecutable(), jiterrors.ErrRegionState)
}

func TestRegionAllocationFailures(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := NewMockMapper(ctrl)

	_, err := NewRegion(m, 0)
	assert.ErrorIs(t, err, jiterrors.ErrAllocation)

	m.EXPECT().Map(16).Return(nil, syscall.ENOMEM)
	_, err = NewRegion(m, 16)
	assert.ErrorIs(t, err, jiterrors.ErrAllocation)
	assert.ErrorIs(t, err, syscall.ENOMEM)
	assert.Equal(t, "AllocationError", jiterrors.GetErrorName(err))

	short := make([]byte, 4)
	m.EXPECT().Map(16).Return(short, nil)
	m.EXPECT().Unmap(short).Return(nil)
	_, err = NewRegion(m, 16)
	assert.ErrorIs(t, err, jiterrors.ErrAllocation)
}

func TestRegionWriteTooLarge(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := NewMockMapper(ctrl)
	mem := make([]byte, 2)
	m.EXPECT().Map(2).Return(mem, nil)

	r, err := NewRegion(m, 2)
	require.NoError(t, err)
	assert.ErrorIs(t, r.Write([]byte{1, 2, 3}), jiterrors.ErrAllocation)
	assert.Equal(t, Writable, r.State())
}

func TestRegionReleaseError(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := NewMockMapper(ctrl)
	mem := make([]byte, 8)
	m.EXPECT().Map(8).Return(mem, nil)
	m.EXPECT().Unmap(mem).Return(syscall.EINVAL).Times(1)

	r, err := NewRegion(m, 8)
	require.NoError(t, err)
	assert.ErrorIs(t, r.Release(), syscall.EINVAL)
	assert.Equal(t, Released, r.State())
	assert.NoError(t, r.Release())
}

func TestEngineFailurePaths(t *testing.T) {
	code := []byte{0x48, 0x31, 0xC0, 0xC3}

	t.Run("empty", func(t *testing.T) {
		e := &Engine{Mapper: NewMockMapper(gomock.NewController(t))}
		_, err := e.Execute(nil)
		assert.ErrorIs(t, err, jiterrors.ErrAllocation)
	})

	t.Run("map", func(t *testing.T) {
		m := NewMockMapper(gomock.NewController(t))
		m.EXPECT().Map(len(code)).Return(nil, syscall.ENOMEM)
		_, err := (&Engine{Mapper: m}).Execute(code)
		assert.ErrorIs(t, err, jiterrors.ErrAllocation)
		assert.False(t, errors.Is(err, jiterrors.ErrPermission))
	})

	t.Run("seal", func(t *testing.T) {
		m := NewMockMapper(gomock.NewController(t))
		mem := make([]byte, 4096)
		var seen []transition
		e := &Engine{Mapper: m, Observer: func(from, to State) { seen = append(seen, transition{from, to}) }}
		gomock.InOrder(
			m.EXPECT().Map(len(code)).Return(mem, nil),
			m.EXPECT().Protect(mem, ProtRead).Return(syscall.EACCES),
			m.EXPECT().Unmap(mem).Return(nil),
		)
		result, err := e.Execute(code)
		assert.Zero(t, result)
		assert.ErrorIs(t, err, jiterrors.ErrPermission)
		assert.ErrorIs(t, err, syscall.EACCES)
		assert.False(t, errors.Is(err, jiterrors.ErrAllocation))
		assert.Equal(t, []transition{{Writable, Released}}, seen)
	})

	t.Run("exec", func(t *testing.T) {
		m := NewMockMapper(gomock.NewController(t))
		mem := make([]byte, 4096)
		var seen []transition
		e := &Engine{Mapper: m, Observer: func(from, to State) { seen = append(seen, transition{from, to}) }}
		gomock.InOrder(
			m.EXPECT().Map(len(code)).Return(mem, nil),
			m.EXPECT().Protect(mem, ProtRead).Return(nil),
			m.EXPECT().Protect(mem, ProtRead|ProtExec).Return(syscall.EPERM),
			m.EXPECT().Unmap(mem).Return(nil),
		)
		_, err := e.Execute(code)
		assert.ErrorIs(t, err, jiterrors.ErrPermission)
		assert.Equal(t, "X2", jiterrors.GetErrorCode(err))
		assert.Equal(t, []transition{{Writable, ReadOnly}, {ReadOnly, Released}}, seen)
	})
}
