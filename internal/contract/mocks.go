package contract

import (
	"context"

	"github.com/huangsam/scholarlens/schema"
	"github.com/stretchr/testify/mock"
)

// MockRecordSource is a mock implementation of RecordSource for testing.
type MockRecordSource struct {
	mock.Mock
}

var _ RecordSource = &MockRecordSource{} // Compile-time check

// Load implements the RecordSource interface.
func (m *MockRecordSource) Load(ctx context.Context) ([]schema.ProjectRecord, error) {
	args := m.Called(ctx)
	records, _ := args.Get(0).([]schema.ProjectRecord)
	return records, args.Error(1)
}
