package mocks

import (
	"github.com/milesj/packager/internal/domain"
	"github.com/stretchr/testify/mock"
)

// MockWriter mocks the domain.Writer interface
type MockWriter struct {
	mock.Mock
}

// Write mocks writing package output
func (m *MockWriter) Write(path string, content []byte) error {
	args := m.Called(path, content)
	return args.Error(0)
}

// MockArchiver mocks the domain.Archiver interface
type MockArchiver struct {
	mock.Mock
}

// Archive mocks writing an archive
func (m *MockArchiver) Archive(path string, entries []domain.ArchiveEntry) error {
	args := m.Called(path, entries)
	return args.Error(0)
}

var (
	_ domain.Writer   = (*MockWriter)(nil)
	_ domain.Archiver = (*MockArchiver)(nil)
)
