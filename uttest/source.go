package uttest

import (
	"bytes"
	"context"
	"testing"

	"github.com/yacchi/utsuwa/bind"
)

// SourceFactory creates a Source whose Load yields the given test data.
// The factory is called for each test case to ensure test isolation.
type SourceFactory func(data []byte) bind.Source

// SourceTester provides utilities to verify Source implementations.
//
// Example:
//
//	func TestSource_Compliance(t *testing.T) {
//	    factory := func(data []byte) bind.Source {
//	        return bytes.New(data)
//	    }
//	    uttest.NewSourceTester(t, factory).TestAll()
//	}
type SourceTester struct {
	t       *testing.T
	factory SourceFactory
}

// NewSourceTester creates a SourceTester for the given SourceFactory.
// The factory is used to create a new Source instance for each test.
func NewSourceTester(t *testing.T, factory SourceFactory) *SourceTester {
	return &SourceTester{
		t:       t,
		factory: factory,
	}
}

// TestAll runs all standard compliance tests for Source implementations.
func (st *SourceTester) TestAll() {
	st.t.Run("String", st.testString)
	st.t.Run("Load", st.testLoad)
	st.t.Run("LoadCancelled", st.testLoadCancelled)
	st.t.Run("Subscribe", st.testSubscribe)
}

// testString verifies String() returns a non-empty description.
func (st *SourceTester) testString(t *testing.T) {
	s := st.factory([]byte(`{"key": "value"}`))

	require(t, s.String() != "", "String() returned empty description")
}

// testLoad verifies Load() returns the data the source was created with.
func (st *SourceTester) testLoad(t *testing.T) {
	testData := []byte(`{"key": "value"}`)
	s := st.factory(testData)

	data, err := s.Load(context.Background())
	requireNoError(t, err, "Load() error = %v", err)
	check(t, bytes.Equal(data, testData), "Load() = %q, want %q", data, testData)
}

// testLoadCancelled verifies Load honors an already-cancelled context.
func (st *SourceTester) testLoadCancelled(t *testing.T) {
	s := st.factory([]byte(`{"key": "value"}`))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Load(ctx)
	check(t, err != nil, "Load() with cancelled context should return an error")
}

// testSubscribe verifies Subscribe and stop work for WatchableSource
// implementations.
func (st *SourceTester) testSubscribe(t *testing.T) {
	s := st.factory([]byte(`{"key": "value"}`))

	ws, ok := s.(bind.WatchableSource)
	if !ok {
		t.Skip("Source does not implement WatchableSource")
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stop, err := ws.Subscribe(ctx, func(data []byte, err error) {})
	requireNoError(t, err, "Subscribe() error = %v", err)
	require(t, stop != nil, "Subscribe() returned nil stop function")

	err = stop(context.Background())
	check(t, err == nil, "stop() error = %v", err)
}
