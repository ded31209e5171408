package v1

import (
	"strconv"

	"github.com/gin-gonic/gin"

	types "github.com/Inteli-Club5/trbe-backend/types/v1"
)

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

// bindPage reads page/page_size query params with defaults applied.
func bindPage(c *gin.Context) types.PageReq {
	page := types.PageReq{
		Page:     atoiOrZero(c.DefaultQuery("page", "1")),
		PageSize: atoiOrZero(c.DefaultQuery("page_size", "20")),
	}
	page.Normalize()
	return page
}
