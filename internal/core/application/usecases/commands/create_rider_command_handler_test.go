package commands_test

import (
	"testing"

	"brewride/internal/core/application/usecases/commands"
	"brewride/internal/core/domain/model/kernel"
	"brewride/internal/core/domain/model/rider"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateRiderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	riderID := kernel.NewUUID()
	cmd, err := commands.NewCreateRiderCommand(riderID, "Kai Chen", "+15550002222", "e-bike")
	require.NoError(t, err)

	var added *rider.Rider
	repo := new(MockRiderRepository)
	repo.On("Add", mock.Anything, mock.AnythingOfType("*rider.Rider")).
		Run(func(args mock.Arguments) { added = args.Get(1).(*rider.Rider) }).
		Return(nil).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("RiderRepository").Return(repo).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockRiderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateRiderCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))

	require.NotNil(t, added)
	require.Equal(t, rider.AccountPending, added.AccountStatus())
	require.False(t, added.IsApproved(), "new riders must await admin review")
	repo.AssertExpectations(t)
}

func TestNewCreateRiderCommand_RequiresProfileFields(t *testing.T) {
	riderID := kernel.NewUUID()

	_, err := commands.NewCreateRiderCommand(riderID, "", "+15550002222", "e-bike")
	require.ErrorIs(t, err, commands.ErrNameIsRequired)

	_, err = commands.NewCreateRiderCommand(riderID, "Kai Chen", "", "e-bike")
	require.ErrorIs(t, err, commands.ErrPhoneIsRequired)

	_, err = commands.NewCreateRiderCommand(riderID, "Kai Chen", "+15550002222", "")
	require.ErrorIs(t, err, commands.ErrVehicleIsRequired)
}

func TestReviewRiderCommandHandler_Handle_Approve(t *testing.T) {
	ctx := t.Context()
	riderID := kernel.NewUUID()
	pending, err := rider.NewRider(riderID, "Kai Chen", "+15550002222", "e-bike")
	require.NoError(t, err)

	cmd, err := commands.NewReviewRiderCommand(riderID, true)
	require.NoError(t, err)

	repo := new(MockRiderRepository)
	repo.On("Get", mock.Anything, riderID).Return(pending, nil).Once()
	repo.On("Update", mock.Anything, pending).Return(nil).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("RiderRepository").Return(repo).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockRiderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewReviewRiderCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))
	require.True(t, pending.IsApproved())
}

func TestReviewRiderCommandHandler_Handle_RejectAlreadyReviewed(t *testing.T) {
	ctx := t.Context()
	riderID := kernel.NewUUID()
	already := approvedRider(riderID)

	cmd, err := commands.NewReviewRiderCommand(riderID, false)
	require.NoError(t, err)

	repo := new(MockRiderRepository)
	repo.On("Get", mock.Anything, riderID).Return(already, nil).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("RiderRepository").Return(repo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockRiderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewReviewRiderCommandHandler(factory)
	err = h.Handle(ctx, cmd)
	require.Error(t, err, "only a pending account can be reviewed")
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}
