package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Samuel04-png/aether-api/internal/live"
	"github.com/Samuel04-png/aether-api/internal/logger"
	"github.com/Samuel04-png/aether-api/internal/models"
	"github.com/Samuel04-png/aether-api/internal/repository"
)

// InviteServiceTestSuite covers the invite lifecycle: pending invites either
// get accepted (invitee joins the workspace) or declined, never deleted.
type InviteServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	feed    *live.Feed
	service *InviteService

	inviter *models.User
	invitee *models.User
	project *models.Project
}

func (suite *InviteServiceTestSuite) SetupTest() {
	var err error
	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.User{},
		&models.TeamMember{},
		&models.Project{},
		&models.ProjectInvite{},
		&models.Notification{},
	)
	suite.Require().NoError(err)

	log := logger.New("test")
	suite.feed = live.NewFeed()

	inviteRepo := repository.NewInviteRepository(suite.db)
	projectRepo := repository.NewProjectRepository(suite.db)
	teamRepo := repository.NewTeamRepository(suite.db)
	userRepo := repository.NewUserRepository(suite.db)
	notificationRepo := repository.NewNotificationRepository(suite.db)
	notifications := NewNotificationService(notificationRepo, suite.feed, log)

	suite.service = NewInviteService(inviteRepo, projectRepo, teamRepo, userRepo, notifications, suite.feed, log)

	suite.inviter = &models.User{Email: "inviter@example.com", PasswordHash: "x", DisplayName: "Inviter"}
	suite.Require().NoError(suite.db.Create(suite.inviter).Error)
	suite.invitee = &models.User{Email: "invitee@example.com", PasswordHash: "x", DisplayName: "Invitee"}
	suite.Require().NoError(suite.db.Create(suite.invitee).Error)

	suite.project = &models.Project{OwnerID: suite.inviter.ID, Name: "Launch", Status: models.ProjectStatusActive}
	suite.Require().NoError(suite.db.Create(suite.project).Error)
}

func (suite *InviteServiceTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *InviteServiceTestSuite) sendInvite() *models.ProjectInvite {
	invite, err := suite.service.SendInvite(context.Background(), suite.inviter.ID, SendInviteInput{
		ProjectID: suite.project.ID,
		InviteeID: suite.invitee.ID,
		Role:      "Engineer",
	})
	suite.Require().NoError(err)
	return invite
}

func (suite *InviteServiceTestSuite) TestSendInvite_NotifiesInvitee() {
	invite := suite.sendInvite()

	suite.Equal(models.InviteStatusPending, invite.Status)

	var notifications []models.Notification
	suite.Require().NoError(suite.db.Where("owner_id = ?", suite.invitee.ID).Find(&notifications).Error)
	suite.Require().Len(notifications, 1)
	suite.Equal(models.NotificationCategoryInvite, notifications[0].Category)
	suite.Require().NotNil(notifications[0].Meta.InviteID)
	suite.Equal(invite.ID, *notifications[0].Meta.InviteID)
}

func (suite *InviteServiceTestSuite) TestSendInvite_RejectsDuplicatePending() {
	suite.sendInvite()

	_, err := suite.service.SendInvite(context.Background(), suite.inviter.ID, SendInviteInput{
		ProjectID: suite.project.ID,
		InviteeID: suite.invitee.ID,
	})
	suite.ErrorIs(err, ErrDuplicateInvite)
}

func (suite *InviteServiceTestSuite) TestSendInvite_RejectsSelfInvite() {
	_, err := suite.service.SendInvite(context.Background(), suite.inviter.ID, SendInviteInput{
		ProjectID: suite.project.ID,
		InviteeID: suite.inviter.ID,
	})
	suite.ErrorIs(err, ErrInviteSelf)
}

func (suite *InviteServiceTestSuite) TestAcceptInvite_JoinsWorkspace() {
	invite := suite.sendInvite()

	err := suite.service.AcceptInvite(context.Background(), invite.ID, suite.invitee.ID)
	suite.Require().NoError(err)

	var stored models.ProjectInvite
	suite.Require().NoError(suite.db.First(&stored, invite.ID).Error)
	suite.Equal(models.InviteStatusAccepted, stored.Status)

	// The invitee now exists as a member of the inviter's workspace team.
	var members []models.TeamMember
	suite.Require().NoError(suite.db.Where("owner_id = ?", suite.inviter.ID).Find(&members).Error)
	suite.Require().Len(members, 1)
	suite.Equal("Invitee", members[0].Name)
	suite.Equal("Engineer", members[0].Role)
}

func (suite *InviteServiceTestSuite) TestAcceptInvite_OnlyAddresseeMayResolve() {
	invite := suite.sendInvite()

	err := suite.service.AcceptInvite(context.Background(), invite.ID, suite.inviter.ID)
	suite.ErrorIs(err, ErrNotInvitee)
}

func (suite *InviteServiceTestSuite) TestAcceptInvite_ResolvedInviteStaysResolved() {
	invite := suite.sendInvite()

	suite.Require().NoError(suite.service.AcceptInvite(context.Background(), invite.ID, suite.invitee.ID))

	err := suite.service.AcceptInvite(context.Background(), invite.ID, suite.invitee.ID)
	suite.ErrorIs(err, ErrInviteNotPending)
}

func (suite *InviteServiceTestSuite) TestDeclineInvite_KeepsRecord() {
	invite := suite.sendInvite()

	suite.Require().NoError(suite.service.DeclineInvite(context.Background(), invite.ID, suite.invitee.ID))

	var stored models.ProjectInvite
	suite.Require().NoError(suite.db.First(&stored, invite.ID).Error)
	suite.Equal(models.InviteStatusDeclined, stored.Status)

	// Declined invites never get deleted.
	var count int64
	suite.db.Model(&models.ProjectInvite{}).Count(&count)
	suite.Equal(int64(1), count)
}

func TestInviteServiceTestSuite(t *testing.T) {
	suite.Run(t, new(InviteServiceTestSuite))
}
