package domain_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"jsinline.dev/pkg/jsinline/internal/controller"
	m "jsinline.dev/pkg/jsinline/internal/model"
)

// mockUI records what workflows show to the user.
type mockUI struct {
	mock.Mock
}

var _ controller.UI = (*mockUI)(nil)

func (u *mockUI) Start(ctx context.Context, _ ...controller.StartOption) error {
	return u.Called(ctx).Error(0)
}

func (u *mockUI) Close(ctx context.Context) {
	u.Called(ctx)
}

func (u *mockUI) Wait(ctx context.Context) {
	u.Called(ctx)
}

func (u *mockUI) AskUserInput(ctx context.Context, defaultValue string) (string, bool, error) {
	args := u.Called(ctx, defaultValue)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (u *mockUI) DisplayOutcome(ctx context.Context, outcome m.Outcome, written bool) error {
	return u.Called(ctx, outcome, written).Error(0)
}

func (u *mockUI) DisplayRefusal(ctx context.Context, path m.Path, err error) {
	u.Called(ctx, path, err)
}

func (u *mockUI) DisplayTargets(ctx context.Context, targets []m.Target, err error) error {
	return u.Called(ctx, targets, err).Error(0)
}

func (u *mockUI) DisplayReports(ctx context.Context, reports []m.Report) error {
	return u.Called(ctx, reports).Error(0)
}

// newMockUI expects the Start/Close pair every workflow performs.
func newMockUI() *mockUI {
	ui := new(mockUI)
	ui.On("Start", mock.Anything).Return(nil)
	ui.On("Close", mock.Anything).Return()

	return ui
}
