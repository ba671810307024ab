package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type Warehouse struct {
	mock.Mock
}

func (m *Warehouse) LoadRunObject(ctx context.Context, uri string) error {
	args := m.Called(ctx, uri)
	return args.Error(0)
}

func (m *Warehouse) RunTransformation(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
