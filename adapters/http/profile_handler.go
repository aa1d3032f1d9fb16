package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	profileUC "github.com/khoahotran/devconnector-profile/internal/application/usecase/profile"
	"github.com/khoahotran/devconnector-profile/pkg/apperror"
	"github.com/khoahotran/devconnector-profile/pkg/logger"
)

const (
	msgNoProfileForUser = "There is no profile for this user"
	msgProfileNotFound  = "Profile not found"
	msgNoGithubProfile  = "No Github profile found"
	msgUserDeleted      = "User deleted"
)

type ProfileHandler struct {
	profileUseCase *profileUC.ProfileUseCase
	entryUseCase   *profileUC.EntryUseCase
	deleteUseCase  *profileUC.DeleteProfileUseCase
	githubUseCase  *profileUC.GithubReposUseCase
	logger         logger.Logger
}

func NewProfileHandler(
	profileUseCase *profileUC.ProfileUseCase,
	entryUseCase *profileUC.EntryUseCase,
	deleteUseCase *profileUC.DeleteProfileUseCase,
	githubUseCase *profileUC.GithubReposUseCase,
	log logger.Logger,
) *ProfileHandler {
	return &ProfileHandler{
		profileUseCase: profileUseCase,
		entryUseCase:   entryUseCase,
		deleteUseCase:  deleteUseCase,
		githubUseCase:  githubUseCase,
		logger:         log,
	}
}

// notFoundAsBadRequest keeps the historical contract of answering 400 with a message
// when the profile is missing. Everything else goes through ErrorMiddleware.
func notFoundAsBadRequest(c *gin.Context, err error, msg string) {
	if errors.Is(err, apperror.ErrNotFound) {
		c.JSON(http.StatusBadRequest, gin.H{"msg": msg})
		return
	}
	c.Error(err)
}

func (h *ProfileHandler) GetMyProfile(c *gin.Context) {
	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("ownerID not found in context"))
		return
	}

	output, err := h.profileUseCase.ExecuteGetProfile(c.Request.Context(), profileUC.GetProfileInput{OwnerID: ownerID})
	if err != nil {
		notFoundAsBadRequest(c, err, msgNoProfileForUser)
		return
	}
	c.JSON(http.StatusOK, output.Profile)
}

func (h *ProfileHandler) UpsertProfile(c *gin.Context) {
	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("ownerID not found in context"))
		return
	}

	var req UpsertProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, toValidationErrors(err))
		return
	}

	output, err := h.profileUseCase.ExecuteUpsertProfile(c.Request.Context(), profileUC.UpsertProfileInput{
		OwnerID: ownerID,
		Fields:  req.ToFields(),
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, output.Profile)
}

func (h *ProfileHandler) ListProfiles(c *gin.Context) {
	output, err := h.profileUseCase.ExecuteListProfiles(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, output.Profiles)
}

func (h *ProfileHandler) GetProfileByUser(c *gin.Context) {
	output, err := h.profileUseCase.ExecuteGetProfileByToken(c.Request.Context(), profileUC.GetProfileByTokenInput{
		OwnerToken: c.Param("user_id"),
	})
	if err != nil {
		notFoundAsBadRequest(c, err, msgProfileNotFound)
		return
	}
	c.JSON(http.StatusOK, output.Profile)
}

func (h *ProfileHandler) DeleteAccount(c *gin.Context) {
	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("ownerID not found in context"))
		return
	}

	if _, err := h.deleteUseCase.Execute(c.Request.Context(), profileUC.DeleteProfileInput{OwnerID: ownerID}); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": msgUserDeleted})
}

func (h *ProfileHandler) AddExperience(c *gin.Context) {
	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("ownerID not found in context"))
		return
	}

	var req AddExperienceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, toValidationErrors(err))
		return
	}
	exp, verrs := req.ToDomain()
	if len(verrs) > 0 {
		c.JSON(http.StatusBadRequest, ValidationErrorResponse{Errors: verrs})
		return
	}

	output, err := h.entryUseCase.ExecuteAddExperience(c.Request.Context(), profileUC.AddExperienceInput{OwnerID: ownerID, Experience: exp})
	if err != nil {
		notFoundAsBadRequest(c, err, msgNoProfileForUser)
		return
	}
	c.JSON(http.StatusOK, output.Profile)
}

func (h *ProfileHandler) RemoveExperience(c *gin.Context) {
	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("ownerID not found in context"))
		return
	}

	output, err := h.entryUseCase.ExecuteRemoveExperience(c.Request.Context(), profileUC.RemoveEntryInput{
		OwnerID: ownerID,
		EntryID: c.Param("exp_id"),
	})
	if err != nil {
		notFoundAsBadRequest(c, err, msgNoProfileForUser)
		return
	}
	c.JSON(http.StatusOK, output.Profile)
}

func (h *ProfileHandler) AddEducation(c *gin.Context) {
	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("ownerID not found in context"))
		return
	}

	var req AddEducationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, toValidationErrors(err))
		return
	}
	edu, verrs := req.ToDomain()
	if len(verrs) > 0 {
		c.JSON(http.StatusBadRequest, ValidationErrorResponse{Errors: verrs})
		return
	}

	output, err := h.entryUseCase.ExecuteAddEducation(c.Request.Context(), profileUC.AddEducationInput{OwnerID: ownerID, Education: edu})
	if err != nil {
		notFoundAsBadRequest(c, err, msgNoProfileForUser)
		return
	}
	c.JSON(http.StatusOK, output.Profile)
}

func (h *ProfileHandler) RemoveEducation(c *gin.Context) {
	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("ownerID not found in context"))
		return
	}

	output, err := h.entryUseCase.ExecuteRemoveEducation(c.Request.Context(), profileUC.RemoveEntryInput{
		OwnerID: ownerID,
		EntryID: c.Param("edu_id"),
	})
	if err != nil {
		notFoundAsBadRequest(c, err, msgNoProfileForUser)
		return
	}
	c.JSON(http.StatusOK, output.Profile)
}

// GetGithubRepos answers every lookup failure with the same 404. The cause is already
// logged by the use case.
func (h *ProfileHandler) GetGithubRepos(c *gin.Context) {
	output, err := h.githubUseCase.Execute(c.Request.Context(), profileUC.GithubReposInput{Handle: c.Param("username")})
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"msg": msgNoGithubProfile})
		return
	}
	c.JSON(http.StatusOK, output.Repos)
}
