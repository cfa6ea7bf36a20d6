package in

import (
	"context"

	"wikigo/internal/modules/game/dto"
	gamein "wikigo/internal/modules/game/port/in"
)

// TUIHandler is the game surface the interactive client drives.
type TUIHandler struct {
	usecase gamein.Usecase
}

func NewTUIHandler(usecase gamein.Usecase) TUIHandler {
	return TUIHandler{usecase: usecase}
}

func (h TUIHandler) Start(ctx context.Context, input dto.StartInput) (dto.PlayOutput, error) {
	return h.usecase.Start(ctx, input)
}

func (h TUIHandler) Follow(ctx context.Context, generation uint64, target string) (dto.PlayOutput, error) {
	return h.usecase.Navigate(ctx, dto.NavigateInput{Generation: generation, Target: target})
}

func (h TUIHandler) Current(ctx context.Context) (dto.SessionOutput, error) {
	return h.usecase.Current(ctx)
}

func (h TUIHandler) Reset(ctx context.Context) (dto.SessionOutput, error) {
	return h.usecase.Reset(ctx)
}

func (h TUIHandler) Result(ctx context.Context) (dto.ResultOutput, error) {
	return h.usecase.Result(ctx)
}

func (h TUIHandler) Submit(ctx context.Context) (dto.SubmitOutput, error) {
	return h.usecase.SubmitResult(ctx)
}
