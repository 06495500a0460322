package server

import (
	"context"
	"encoding/json"
	"time"

	"github.com/CPU-commits/Intranet_BAttainment/services"
	"github.com/CPU-commits/Intranet_BAttainment/stack"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

const NATS_REQUEST_TIMEOUT = time.Second * 10

type AttainmentRequest struct {
	User     string `json:"user"`
	Batch    string `json:"batch"`
	Semester string `json:"semester"`
}

func HandleAttainmentRequest(ctx context.Context, svc *services.Services, payload []byte) stack.NatsRes {
	var request AttainmentRequest
	if err := stack.DecodeData(payload, &request); err != nil {
		return stack.NatsRes{
			Success: false,
			Message: "invalid request: " + err.Error(),
		}
	}
	attainments, errRes := svc.Attainment.GetAttainment(ctx, request.User, request.Batch, request.Semester)
	if errRes != nil {
		return stack.NatsRes{
			Success: false,
			Message: errRes.Error(),
		}
	}
	return stack.NatsRes{
		Success: true,
		Data:    attainments,
	}
}

// Answers attainment.get requests
func SubscribeAttainment(broker *stack.Nats, svc *services.Services) (*nats.Subscription, error) {
	return broker.Subscribe(stack.GET_ATTAINMENT, func(m *nats.Msg) {
		ctx, cancel := context.WithTimeout(context.Background(), NATS_REQUEST_TIMEOUT)
		defer cancel()

		response, err := json.Marshal(HandleAttainmentRequest(ctx, svc, m.Data))
		if err != nil {
			zap.L().Error("encode attainment reply", zap.Error(err))
			return
		}
		if err := m.Respond(response); err != nil {
			zap.L().Warn("attainment reply not sent", zap.Error(err))
		}
	})
}
