//go:build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/miuye256/restaurant-chatbot-backend/internal/domain"
	"github.com/miuye256/restaurant-chatbot-backend/internal/infrastructure"
	"github.com/miuye256/restaurant-chatbot-backend/internal/interfaces"
	"github.com/miuye256/restaurant-chatbot-backend/internal/interfaces/httpserver/routes"
)

func CreateApplication() (*Application, error) {
	wire.Build(
		domain.ServiceProvider,
		infrastructure.InfrastructureProvider,
		routes.RouteProvider,
		interfaces.InterfacesProvider,
		wire.Struct(new(Application), "*"),
	)
	return nil, nil
}

func CreateDataInitializer() (*DataInitializer, error) {
	wire.Build(
		infrastructure.InfrastructureProvider,
		wire.Struct(new(DataInitializer), "*"),
	)
	return nil, nil
}
