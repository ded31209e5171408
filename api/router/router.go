package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Inteli-Club5/trbe-backend/api/middleware"
	v1 "github.com/Inteli-Club5/trbe-backend/api/v1"
	"github.com/Inteli-Club5/trbe-backend/service/svc"
	"github.com/Inteli-Club5/trbe-backend/stores/gdb/trbe"
)

func NewRouter(svcCtx *svc.ServerCtx) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "x-web3-address", "x-web3-signature", "x-web3-timestamp", "x-web3-message"},
		MaxAge:           12 * time.Hour,
		AllowCredentials: false,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	loadV1(r, svcCtx)
	return r
}

func loadV1(r *gin.Engine, svcCtx *svc.ServerCtx) {
	api := r.Group("/api/v1")

	auth := api.Group("/auth")
	{
		auth.POST("/register", v1.RegisterHandler(svcCtx))
		auth.POST("/login", v1.LoginHandler(svcCtx))
	}

	admin := middleware.RequireRole(string(trbe.UserRoleAdmin))
	moderator := middleware.RequireRole(string(trbe.UserRoleAdmin), string(trbe.UserRoleModerator))

	users := api.Group("/users", middleware.Auth(svcCtx))
	{
		users.GET("/me", v1.MeHandler(svcCtx))
		users.GET("", admin, v1.ListUsersHandler(svcCtx))
		users.GET("/wallet/:address", v1.GetUserByWalletHandler(svcCtx))
		users.GET("/:id", v1.GetUserHandler(svcCtx))
		users.PUT("/:id", v1.UpdateUserHandler(svcCtx))
		users.DELETE("/:id", admin, v1.DeleteUserHandler(svcCtx))

		users.GET("/:id/stats", v1.GetUserStatsHandler(svcCtx))
		users.GET("/:id/rank", v1.GetUserRankHandler(svcCtx))
		users.GET("/:id/activity", v1.GetRecentActivityHandler(svcCtx))
		users.GET("/:id/check-ins", v1.ListCheckInsHandler(svcCtx))

		users.POST("/:id/tokens", admin, v1.UpdateTokensHandler(svcCtx))
		users.POST("/:id/experience", admin, v1.UpdateExperienceHandler(svcCtx))
		users.POST("/:id/reputation", moderator, v1.UpdateReputationHandler(svcCtx))

		users.GET("/:id/transactions", v1.ListUserTransactionsHandler(svcCtx))
		users.GET("/:id/transactions/summary", v1.GetTransactionSummaryHandler(svcCtx))
		users.GET("/:id/reputation/history", v1.GetReputationHistoryHandler(svcCtx))

		users.PUT("/:id/social", moderator, v1.UpdateSocialStatsHandler(svcCtx))
		users.GET("/:id/social/score", v1.GetSocialScoreHandler(svcCtx))
	}

	tasks := api.Group("/tasks", middleware.Auth(svcCtx))
	{
		tasks.POST("", admin, v1.CreateTaskHandler(svcCtx))
		tasks.GET("", v1.ListTasksHandler(svcCtx))
		tasks.GET("/mine", v1.GetUserTasksHandler(svcCtx))
		tasks.GET("/available", v1.GetAvailableTasksHandler(svcCtx))
		tasks.GET("/completed", v1.GetCompletedTasksHandler(svcCtx))
		tasks.GET("/stats", v1.GetUserTaskStatsHandler(svcCtx))
		tasks.GET("/:id", v1.GetTaskHandler(svcCtx))
		tasks.PUT("/:id", admin, v1.UpdateTaskHandler(svcCtx))
		tasks.DELETE("/:id", admin, v1.DeleteTaskHandler(svcCtx))

		tasks.POST("/:id/start", v1.StartTaskHandler(svcCtx))
		tasks.POST("/:id/progress", v1.UpdateTaskProgressHandler(svcCtx))
		tasks.POST("/:id/fail", v1.FailTaskHandler(svcCtx))
	}

	badges := api.Group("/badges", middleware.Auth(svcCtx))
	{
		badges.POST("", admin, v1.CreateBadgeHandler(svcCtx))
		badges.GET("", v1.ListBadgesHandler(svcCtx))
		badges.GET("/mine", v1.GetUserBadgesHandler(svcCtx))
		badges.GET("/popular", v1.GetPopularBadgesHandler(svcCtx))
		badges.GET("/stats", v1.GetUserBadgeStatsHandler(svcCtx))
		badges.GET("/:id", v1.GetBadgeHandler(svcCtx))
		badges.PUT("/:id", admin, v1.UpdateBadgeHandler(svcCtx))
		badges.DELETE("/:id", admin, v1.DeleteBadgeHandler(svcCtx))

		badges.POST("/:id/progress", v1.AwardBadgeProgressHandler(svcCtx))
		badges.GET("/:id/progress", v1.GetBadgeProgressHandler(svcCtx))
	}

	transactions := api.Group("/transactions", middleware.Auth(svcCtx))
	{
		transactions.GET("/:id", v1.GetTransactionHandler(svcCtx))
	}

	api.GET("/leaderboard", middleware.Auth(svcCtx), v1.GetLeaderboardHandler(svcCtx))

	clubs := api.Group("/clubs", middleware.Auth(svcCtx))
	{
		clubs.POST("", admin, v1.CreateClubHandler(svcCtx))
		clubs.GET("", v1.ListClubsHandler(svcCtx))
		clubs.GET("/followed", v1.GetFollowedClubHandler(svcCtx))
		clubs.GET("/:id", v1.GetClubHandler(svcCtx))
		clubs.PUT("/:id", admin, v1.UpdateClubHandler(svcCtx))
		clubs.DELETE("/:id", admin, v1.DeleteClubHandler(svcCtx))

		clubs.POST("/:id/follow", v1.FollowClubHandler(svcCtx))
		clubs.DELETE("/:id/follow", v1.UnfollowClubHandler(svcCtx))
		clubs.GET("/:id/followers", v1.ListClubFollowersHandler(svcCtx))

		clubs.GET("/:id/chain", v1.GetChainClubHandler(svcCtx))
		clubs.GET("/:id/chain/member", v1.CheckChainMemberHandler(svcCtx))
		clubs.PUT("/:id/chain/price", admin, v1.UpdateChainPriceHandler(svcCtx))
		clubs.POST("/:id/chain/withdraw", admin, v1.WithdrawChainClubHandler(svcCtx))
	}

	fanGroups := api.Group("/fan-groups", middleware.Auth(svcCtx))
	{
		fanGroups.POST("", v1.CreateFanGroupHandler(svcCtx))
		fanGroups.GET("", v1.ListFanGroupsHandler(svcCtx))
		fanGroups.GET("/mine", v1.GetMyMembershipHandler(svcCtx))
		fanGroups.GET("/:id", v1.GetFanGroupHandler(svcCtx))
		fanGroups.PUT("/:id", moderator, v1.UpdateFanGroupHandler(svcCtx))
		fanGroups.DELETE("/:id", admin, v1.DeleteFanGroupHandler(svcCtx))

		fanGroups.POST("/:id/join", v1.JoinFanGroupHandler(svcCtx))
		fanGroups.POST("/:id/leave", v1.LeaveFanGroupHandler(svcCtx))
		fanGroups.POST("/:id/approve", moderator, v1.ApproveMembershipHandler(svcCtx))
		fanGroups.POST("/:id/reject", moderator, v1.RejectMembershipHandler(svcCtx))
		fanGroups.POST("/:id/role", moderator, v1.SetMembershipRoleHandler(svcCtx))
		fanGroups.GET("/:id/members", v1.ListGroupMembersHandler(svcCtx))
	}

	games := api.Group("/games", middleware.Auth(svcCtx))
	{
		games.POST("", moderator, v1.CreateGameHandler(svcCtx))
		games.GET("", v1.ListGamesHandler(svcCtx))
		games.GET("/upcoming", v1.GetUpcomingGamesHandler(svcCtx))
		games.GET("/:id", v1.GetGameHandler(svcCtx))
		games.PUT("/:id", moderator, v1.UpdateGameHandler(svcCtx))
		games.DELETE("/:id", admin, v1.DeleteGameHandler(svcCtx))

		games.POST("/:id/finish", moderator, v1.FinishGameHandler(svcCtx))
	}

	events := api.Group("/events", middleware.Auth(svcCtx))
	{
		events.POST("", moderator, v1.CreateEventHandler(svcCtx))
		events.GET("", v1.ListEventsHandler(svcCtx))
		events.GET("/:id", v1.GetEventHandler(svcCtx))
		events.PUT("/:id", moderator, v1.UpdateEventHandler(svcCtx))
		events.DELETE("/:id", admin, v1.DeleteEventHandler(svcCtx))

		events.POST("/:id/register", v1.RegisterForEventHandler(svcCtx))
		events.POST("/:id/cancel", v1.CancelEventRegistrationHandler(svcCtx))
		events.POST("/:id/confirm", moderator, v1.ConfirmAttendanceHandler(svcCtx))
		events.GET("/:id/participants", v1.ListEventParticipantsHandler(svcCtx))
	}

	api.POST("/check-ins", middleware.Auth(svcCtx), v1.CreateCheckInHandler(svcCtx))

	// Chain routes authenticated by wallet signature instead of a session.
	chain := api.Group("/chain", middleware.Web3Auth())
	{
		chain.GET("/clubs", v1.ListChainClubIDsHandler(svcCtx))
		chain.POST("/reward", v1.RewardFanTokenHandler(svcCtx))
	}
}
