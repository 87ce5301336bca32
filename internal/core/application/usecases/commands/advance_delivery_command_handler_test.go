package commands_test

import (
	"testing"

	"brewride/internal/core/application/usecases/commands"
	"brewride/internal/core/domain/model/kernel"
	"brewride/internal/core/domain/model/order"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewAdvanceDeliveryCommand_RejectsWrongStage(t *testing.T) {
	for _, stage := range []order.Status{order.Pending, order.Approved, order.Accepted, order.Completed} {
		_, err := commands.NewAdvanceDeliveryCommand(kernel.NewUUID(), kernel.NewUUID(), stage)
		require.ErrorIs(t, err, commands.ErrStageIsInvalid, "stage %s", stage)
	}
}

func TestAdvanceDeliveryCommandHandler_Handle_PickUpThenDeliver(t *testing.T) {
	ctx := t.Context()
	riderID := kernel.NewUUID()
	accepted := orderInStatus(kernel.NewUUID(),
		func(o *order.Order) error { return o.Approve() },
		func(o *order.Order) error { return o.Accept(riderID) },
	)

	for _, step := range []struct {
		stage order.Status
		want  order.Status
	}{
		{order.PickedUp, order.PickedUp},
		{order.Delivered, order.Delivered},
	} {
		cmd, err := commands.NewAdvanceDeliveryCommand(accepted.ID(), riderID, step.stage)
		require.NoError(t, err)

		repo := new(MockOrderRepository)
		repo.On("Get", mock.Anything, accepted.ID()).Return(accepted, nil).Once()
		repo.On("Update", mock.Anything, accepted).Return(nil).Once()

		uow := new(MockUoW)
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("OrderRepository").Return(repo).Once()
		uow.On("Commit", ctx).Return(nil).Once()
		uow.On("Rollback", ctx).Return(nil).Once()

		factory := new(MockOrderUoWFactory)
		factory.On("Create").Return(uow).Once()

		h := commands.NewAdvanceDeliveryCommandHandler(factory, nil, nil)
		require.NoError(t, h.Handle(ctx, cmd))
		require.Equal(t, step.want, accepted.Status())
	}
}

func TestAdvanceDeliveryCommandHandler_Handle_CannotSkipPickup(t *testing.T) {
	ctx := t.Context()
	riderID := kernel.NewUUID()
	accepted := orderInStatus(kernel.NewUUID(),
		func(o *order.Order) error { return o.Approve() },
		func(o *order.Order) error { return o.Accept(riderID) },
	)
	cmd, err := commands.NewAdvanceDeliveryCommand(accepted.ID(), riderID, order.Delivered)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	repo.On("Get", mock.Anything, accepted.ID()).Return(accepted, nil).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAdvanceDeliveryCommandHandler(factory, nil, nil)
	err = h.Handle(ctx, cmd)
	require.Error(t, err, "delivered must follow picked_up")
	require.Equal(t, order.Accepted, accepted.Status())
}

func TestAdvanceDeliveryCommandHandler_Handle_WrongRider(t *testing.T) {
	ctx := t.Context()
	accepted := orderInStatus(kernel.NewUUID(),
		func(o *order.Order) error { return o.Approve() },
		func(o *order.Order) error { return o.Accept(kernel.NewUUID()) },
	)
	cmd, err := commands.NewAdvanceDeliveryCommand(accepted.ID(), kernel.NewUUID(), order.PickedUp)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	repo.On("Get", mock.Anything, accepted.ID()).Return(accepted, nil).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAdvanceDeliveryCommandHandler(factory, nil, nil)
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, order.ErrRiderMismatch)
}
