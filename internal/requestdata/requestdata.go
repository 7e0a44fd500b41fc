package requestdata

import (
	"context"

	"github.com/google/uuid"
)

type ctxKey struct{}

var requestDataKey ctxKey

// RequestData is the authenticated identity for one request. It is always
// passed explicitly through context so services never read ambient session
// state.
type RequestData struct {
	UserID    uuid.UUID
	Role      string
	SessionID string
}

const (
	RoleAdmin   = "admin"
	RoleAdvisor = "advisor"
)

func WithRequestData(ctx context.Context, rd *RequestData) context.Context {
	return context.WithValue(ctx, requestDataKey, rd)
}

func GetRequestData(ctx context.Context) *RequestData {
	if rd, ok := ctx.Value(requestDataKey).(*RequestData); ok {
		return rd
	}
	return nil
}

func (rd *RequestData) IsAdmin() bool {
	return rd != nil && rd.Role == RoleAdmin
}
