// gamification.go: farmer engagement endpoints
package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (c *Controller) initGamificationRoutes() {
	if c.Gamification == nil {
		return
	}
	g := c.Group.Group("/gamification")
	g.GET("/profile", c.GetProfile)
	g.POST("/login", c.Login)
	g.GET("/quests", c.ListQuests)
	g.POST("/quests/:id/complete", c.CompleteQuest)
	g.POST("/quests/:id/progress", c.AdvanceQuest)
	g.GET("/rewards", c.ListRewards)
	g.POST("/rewards/:id/unlock", c.UnlockReward)
}

// GetProfile returns the user profile, 404 before first login.
func (c *Controller) GetProfile(ctx echo.Context) error {
	profile, err := c.Gamification.GetUserProfile()
	if err != nil {
		return c.HandleError(ctx, err, "failed to load profile")
	}
	if profile == nil {
		return ctx.JSON(http.StatusNotFound, errorResponse{Error: "no profile", Message: "login first"})
	}
	return ctx.JSON(http.StatusOK, profile)
}

// loginRequest identifies the user on first login.
type loginRequest struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}

// Login initializes the profile on first call and records the daily login on
// later calls.
func (c *Controller) Login(ctx echo.Context) error {
	var req loginRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{Error: err.Error(), Message: "invalid request payload"})
	}
	if req.UserID == "" {
		req.UserID = "local-farmer"
	}
	if req.Username == "" {
		req.Username = c.Settings.Gamification.Username
	}

	profile, err := c.Gamification.InitializeUser(req.UserID, req.Username)
	if err != nil {
		return c.HandleError(ctx, err, "login failed")
	}
	return ctx.JSON(http.StatusOK, profile)
}

// ListQuests returns the daily quests.
func (c *Controller) ListQuests(ctx echo.Context) error {
	quests, err := c.Gamification.GetDailyQuests()
	if err != nil {
		return c.HandleError(ctx, err, "failed to list quests")
	}
	return ctx.JSON(http.StatusOK, quests)
}

// CompleteQuest completes a quest and awards its points.
func (c *Controller) CompleteQuest(ctx echo.Context) error {
	completed, err := c.Gamification.CompleteQuest(ctx.Param("id"))
	if err != nil {
		return c.HandleError(ctx, err, "failed to complete quest")
	}
	if !completed {
		return ctx.JSON(http.StatusConflict, errorResponse{
			Error: "quest missing or already completed", Message: "nothing to complete",
		})
	}
	return ctx.NoContent(http.StatusNoContent)
}

// AdvanceQuest increments a counted quest by one step.
func (c *Controller) AdvanceQuest(ctx echo.Context) error {
	quest, err := c.Gamification.UpdateQuestProgress(ctx.Param("id"), 1)
	if err != nil {
		return c.HandleError(ctx, err, "failed to update quest progress")
	}
	if quest == nil {
		return ctx.JSON(http.StatusNotFound, errorResponse{Error: "quest not found", Message: "no such quest"})
	}
	return ctx.JSON(http.StatusOK, quest)
}

// ListRewards returns the reward catalog.
func (c *Controller) ListRewards(ctx echo.Context) error {
	rewards, err := c.Gamification.GetRewards()
	if err != nil {
		return c.HandleError(ctx, err, "failed to list rewards")
	}
	return ctx.JSON(http.StatusOK, rewards)
}

// UnlockReward spends points on a reward; 409 when the balance is short.
func (c *Controller) UnlockReward(ctx echo.Context) error {
	unlocked, err := c.Gamification.UnlockReward(ctx.Param("id"))
	if err != nil {
		return c.HandleError(ctx, err, "failed to unlock reward")
	}
	if !unlocked {
		return ctx.JSON(http.StatusConflict, errorResponse{
			Error: "reward missing, already unlocked, or insufficient points", Message: "unlock rejected",
		})
	}
	return ctx.NoContent(http.StatusNoContent)
}
