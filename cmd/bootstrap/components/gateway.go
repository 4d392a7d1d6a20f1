package components

import (
	"hotelops/internal/infra/pgstore"
	"hotelops/internal/usecase/remote"

	"go.uber.org/fx"
)

// GatewayModule binds the reservation-system adapters. The default
// deployment talks to the local Postgres replica of the reservation
// data; swapping in another adapter only requires re-binding the
// remote interfaces here.
var GatewayModule = fx.Module("gateway",
	fx.Provide(
		fx.Annotate(
			pgstore.NewBookingStore,
			fx.As(new(remote.BookingGateway)),
		),
		fx.Annotate(
			pgstore.NewRoomStore,
			fx.As(new(remote.PricingGateway)),
		),
	),
)
