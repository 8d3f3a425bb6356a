package utils

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/roomledger-dev/roomledger/internal/middleware"
	"github.com/roomledger-dev/roomledger/internal/types"
)

func GetCurrentMember(ctx *gin.Context) (middleware.AuthenticatedMember, error) {
	member, exists := ctx.Get(types.ContextMemberKey)

	if !exists {
		return middleware.AuthenticatedMember{}, fmt.Errorf("Member not authenticated")
	}

	authenticatedMember, ok := member.(middleware.AuthenticatedMember)

	if !ok {
		return middleware.AuthenticatedMember{}, fmt.Errorf("Invalid member type in context")
	}

	return authenticatedMember, nil
}
