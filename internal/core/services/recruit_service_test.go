package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/mlm_backoffice/internal/apperrors"
	"github.com/SscSPs/mlm_backoffice/internal/core/domain"
	"github.com/SscSPs/mlm_backoffice/internal/dto"
)

type RecruitServiceTestSuite struct {
	suite.Suite
	f   *fixture
	ctx context.Context
}

func (suite *RecruitServiceTestSuite) SetupTest() {
	suite.f = newFixture(suite.T())
	suite.ctx = context.Background()
}

func TestRecruitServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RecruitServiceTestSuite))
}

func (suite *RecruitServiceTestSuite) register(name string) *domain.PendingRecruit {
	recruit, err := suite.f.recruits.RegisterRecruit(suite.ctx, suite.f.memberID, dto.RegisterRecruitRequest{Name: name, Email: " " + name + "@Example.com "})
	suite.Require().NoError(err)
	return recruit
}

func (suite *RecruitServiceTestSuite) TestRegister() {
	recruit := suite.register("ravi")
	suite.Equal(domain.StatusPending, recruit.Status)
	suite.Equal(suite.f.memberID, recruit.SponsorID)
	suite.Equal("ravi@example.com", recruit.Email)
	suite.Nil(recruit.UserID)

	_, err := suite.f.recruits.RegisterRecruit(suite.ctx, "ghost", dto.RegisterRecruitRequest{Name: "x", Email: "x@example.com"})
	suite.ErrorIs(err, apperrors.ErrNotFound)
	_, err = suite.f.recruits.RegisterRecruit(suite.ctx, suite.f.memberID, dto.RegisterRecruitRequest{Name: "  ", Email: "x@example.com"})
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *RecruitServiceTestSuite) TestApproveCreatesMemberWithWallet() {
	f := suite.f
	recruit := suite.register("meena")

	approved, err := f.recruits.ApproveRecruit(suite.ctx, recruit.RecruitID, f.adminID, dto.ApproveRecruitRequest{PackageAmount: dec("1000.00"), Position: "left"})
	suite.Require().NoError(err)
	suite.Equal(domain.StatusApproved, approved.Status)
	suite.Equal(domain.PositionLeft, approved.Position)
	suite.Require().NotNil(approved.PackageAmount)
	suite.True(approved.PackageAmount.Equal(dec("1000.00")))
	suite.Require().NotNil(approved.UserID)

	member, err := f.users.GetUserByID(suite.ctx, *approved.UserID)
	suite.Require().NoError(err)
	suite.Equal("meena", member.Name)
	suite.Equal(domain.RoleMember, member.Role)
	suite.True(f.balance(suite.T(), member.UserID).IsZero(), "package amount is not credited")

	_, err = f.recruits.ApproveRecruit(suite.ctx, recruit.RecruitID, f.adminID, dto.ApproveRecruitRequest{PackageAmount: dec("1"), Position: "RIGHT"})
	suite.ErrorIs(err, apperrors.ErrRequestNotPending)
	_, err = f.recruits.RejectRecruit(suite.ctx, recruit.RecruitID, f.adminID, "")
	suite.ErrorIs(err, apperrors.ErrRequestNotPending)

	f.publisher.AssertCalled(suite.T(), "Publish", mock.Anything, eventOfType(domain.EventRecruitApproved))
}

func (suite *RecruitServiceTestSuite) TestApproveValidation() {
	f := suite.f
	recruit := suite.register("anil")

	_, err := f.recruits.ApproveRecruit(suite.ctx, recruit.RecruitID, f.adminID, dto.ApproveRecruitRequest{PackageAmount: dec("0"), Position: "LEFT"})
	suite.ErrorIs(err, apperrors.ErrInvalidAmount)
	_, err = f.recruits.ApproveRecruit(suite.ctx, recruit.RecruitID, f.adminID, dto.ApproveRecruitRequest{PackageAmount: dec("10"), Position: "MIDDLE"})
	suite.ErrorIs(err, apperrors.ErrValidation)
	_, err = f.recruits.ApproveRecruit(suite.ctx, recruit.RecruitID, f.memberID, dto.ApproveRecruitRequest{PackageAmount: dec("10"), Position: "LEFT"})
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	_, err = f.recruits.ApproveRecruit(suite.ctx, "missing", f.adminID, dto.ApproveRecruitRequest{PackageAmount: dec("10"), Position: "LEFT"})
	suite.ErrorIs(err, apperrors.ErrNotFound)

	stored, err := f.store.FindRecruitByID(suite.ctx, recruit.RecruitID)
	suite.Require().NoError(err)
	suite.Equal(domain.StatusPending, stored.Status)
}

func (suite *RecruitServiceTestSuite) TestRejectAndList() {
	f := suite.f
	first := suite.register("a")
	second := suite.register("b")

	rejected, err := f.recruits.RejectRecruit(suite.ctx, first.RecruitID, f.adminID, "duplicate signup")
	suite.Require().NoError(err)
	suite.Equal(domain.StatusRejected, rejected.Status)
	suite.Equal("duplicate signup", rejected.AdminNotes)
	suite.Nil(rejected.UserID)

	pending, err := f.recruits.ListRecruits(suite.ctx, f.adminID, domain.StatusPending, 10, 0)
	suite.Require().NoError(err)
	suite.Require().Len(pending, 1)
	suite.Equal(second.RecruitID, pending[0].RecruitID)

	all, err := f.recruits.ListRecruits(suite.ctx, f.adminID, "", 10, 0)
	suite.Require().NoError(err)
	suite.Len(all, 2)

	_, err = f.recruits.ListRecruits(suite.ctx, f.adminID, "DONE", 10, 0)
	suite.ErrorIs(err, apperrors.ErrValidation)
	_, err = f.recruits.ListRecruits(suite.ctx, f.memberID, domain.StatusPending, 10, 0)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}
