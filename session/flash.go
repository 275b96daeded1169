package session

import (
	"github.com/labstack/echo/v4"
)

const (
	FlashKey     = "_flash"
	FlashTypeKey = "_flash_type"
)

type FlashType string

const (
	FlashSuccess FlashType = "success"
	FlashError   FlashType = "error"
	FlashInfo    FlashType = "info"
)

type FlashMessage struct {
	Message string    `json:"message"`
	Type    FlashType `json:"type"`
}

func SetFlash(c echo.Context, message string, flashType FlashType) {
	manager := GetManager(c)
	if manager == nil {
		return
	}
	ctx := c.Request().Context()
	manager.Put(ctx, FlashKey, message)
	manager.Put(ctx, FlashTypeKey, string(flashType))
}

func GetFlash(c echo.Context) *FlashMessage {
	manager := GetManager(c)
	if manager == nil {
		return nil
	}
	ctx := c.Request().Context()
	flash := manager.Pop(ctx, FlashKey)
	flashType := manager.Pop(ctx, FlashTypeKey)

	msg, ok := flash.(string)
	if !ok {
		return nil
	}

	msgType := FlashInfo
	if typeStr, ok := flashType.(string); ok {
		msgType = FlashType(typeStr)
	}

	return &FlashMessage{Message: msg, Type: msgType}
}
