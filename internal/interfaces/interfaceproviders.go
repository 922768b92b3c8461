package interfaces

import (
	"github.com/google/wire"

	"github.com/miuye256/restaurant-chatbot-backend/internal/interfaces/httpserver"
)

var InterfacesProvider = wire.NewSet(
	httpserver.NewHttpServer,
)
