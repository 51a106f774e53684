package contract

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockRasterConverter is a mock implementation of RasterConverter for testing.
type MockRasterConverter struct {
	mock.Mock
}

var _ RasterConverter = &MockRasterConverter{} // Compile-time check

// Name implements the RasterConverter interface.
func (m *MockRasterConverter) Name() string {
	args := m.Called()
	return args.String(0)
}

// Convert implements the RasterConverter interface.
func (m *MockRasterConverter) Convert(ctx context.Context, src, dst string, opts RasterOptions) (ConvertOutput, error) {
	args := m.Called(ctx, src, dst, opts)
	return args.Get(0).(ConvertOutput), args.Error(1)
}
