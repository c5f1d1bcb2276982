package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const itemsPerPage = 5

// pageParam читает номер страницы из URL, по умолчанию 1
func pageParam(c *gin.Context) int {
	page := 1
	if p := c.Param("page"); p != "" {
		if parsed, err := strconv.Atoi(p); err == nil && parsed > 0 {
			page = parsed
		}
	}
	return page
}

func pageOffset(page int) int {
	return (page - 1) * itemsPerPage
}

func totalPages(total int64) int64 {
	return (total + itemsPerPage - 1) / itemsPerPage
}
