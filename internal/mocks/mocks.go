// Package mocks contains testify mocks of the store and collaborator interfaces.
package mocks

import "github.com/stretchr/testify/mock"

// testingT is the subset of *testing.T the mock constructors need.
type testingT interface {
	mock.TestingT
	Cleanup(func())
}

func register(m *mock.Mock, t testingT) {
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
}
