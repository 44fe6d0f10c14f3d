// File: internal/router/router.go
package router

import (
	"github.com/labstack/echo/v4"

	"taskboard/internal/cache"
	"taskboard/internal/database"
	eventbus "taskboard/internal/events"
	"taskboard/internal/handler"
	"taskboard/internal/handler/auth"
	"taskboard/internal/handler/categories"
	"taskboard/internal/handler/events"
	"taskboard/internal/handler/products"
	"taskboard/internal/handler/tags"
	"taskboard/internal/handler/tasks"
	"taskboard/internal/handler/users"
	"taskboard/internal/middleware"
)

// Setup 註冊所有路由與中介層
func Setup(e *echo.Echo, db database.DB, rdb cache.Cache, bus eventbus.Bus) {
	api := e.Group("/api")

	// 健康檢查（需登入）
	api.GET("/ping", handler.PingHandler(db, rdb), middleware.RequireAuth)

	// 註冊與登入
	api.POST("/auth/register", auth.RegisterHandler(db))
	api.POST("/auth/login", auth.LoginHandler(db))

	// 當前使用者個人資料
	apiUsersMe := api.Group("/users/me", middleware.RequireAuth)
	apiUsersMe.GET("", users.GetMeHandler(db))
	apiUsersMe.PUT("", users.UpdateMeHandler(db))
	apiUsersMe.DELETE("", users.DeleteMeHandler(db))
	apiUsersMe.PATCH("/password", users.UpdateMyPasswordHandler(db))

	// 管理員專屬 Users CRUD
	apiUsers := api.Group("/users", middleware.RequireAdmin)
	apiUsers.POST("", users.CreateUserHandler(db))
	apiUsers.GET("", users.ListUsersHandler(db))
	apiUsers.GET("/:user_id", users.GetUserHandler(db))
	apiUsers.PUT("/:user_id", users.UpdateUserHandler(db))
	apiUsers.DELETE("/:user_id", users.DeleteUserHandler(db))

	// 商品分類，讀取需登入、寫入限管理員
	api.GET("/categories", categories.ListCategoriesHandler(db), middleware.RequireAuth)
	api.GET("/categories/:category_id", categories.GetCategoryHandler(db), middleware.RequireAuth)
	api.GET("/categories/:category_id/products", categories.ListCategoryProductsHandler(db), middleware.RequireAuth)
	api.POST("/categories", categories.CreateCategoryHandler(db), middleware.RequireAdmin)
	api.PUT("/categories/:category_id", categories.UpdateCategoryHandler(db), middleware.RequireAdmin)
	api.DELETE("/categories/:category_id", categories.DeleteCategoryHandler(db), middleware.RequireAdmin)

	// 商品，讀取需登入、寫入限管理員
	api.GET("/products", products.ListProductsHandler(db), middleware.RequireAuth)
	api.GET("/products/:product_id", products.GetProductHandler(db), middleware.RequireAuth)
	api.POST("/products", products.CreateProductHandler(db), middleware.RequireAdmin)
	api.PUT("/products/:product_id", products.UpdateProductHandler(db), middleware.RequireAdmin)
	api.DELETE("/products/:product_id", products.DeleteProductHandler(db), middleware.RequireAdmin)

	// 看板任務（需登入）
	apiTasks := api.Group("/tasks", middleware.RequireAuth)
	apiTasks.POST("", tasks.CreateTaskHandler(db, bus))
	apiTasks.GET("", tasks.ListTasksHandler(db))
	apiTasks.GET("/:task_id", tasks.GetTaskHandler(db, rdb))
	apiTasks.PUT("/:task_id", tasks.UpdateTaskHandler(db, rdb, bus))
	apiTasks.PATCH("/:task_id/status", tasks.UpdateTaskStatusHandler(db, rdb, bus))
	apiTasks.PUT("/:task_id/tags", tasks.ReplaceTaskTagsHandler(db, rdb, bus))
	apiTasks.DELETE("/:task_id", tasks.DeleteTaskHandler(db, rdb, bus))

	api.GET("/board", tasks.GetBoardHandler(db), middleware.RequireAuth)

	// 標籤（需登入，寫入限管理員）
	api.GET("/tags", tags.ListTagsHandler(db), middleware.RequireAuth)
	api.GET("/tags/:tag_id", tags.GetTagHandler(db), middleware.RequireAuth)
	api.POST("/tags", tags.CreateTagHandler(db), middleware.RequireAdmin)
	api.PUT("/tags/:tag_id", tags.UpdateTagHandler(db), middleware.RequireAdmin)
	api.DELETE("/tags/:tag_id", tags.DeleteTagHandler(db), middleware.RequireAdmin)

	// 任務事件串流（需登入）
	api.GET("/events/tasks", events.StreamTasksHandler(bus), middleware.RequireAuth)
}
