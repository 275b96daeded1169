package handlers

import (
	"go.uber.org/fx"
)

var Module = fx.Options(
	fx.Provide(
		NewAuthHandler,
		NewMediaHandler,
		NewContentHandler,
		NewPlaylistHandler,
		NewSubscriptionHandler,
		NewProfileHandler,
		NewAPIHandler,
		NewAdminHandler,
	),
	fx.Provide(func(
		auth *AuthHandler,
		media *MediaHandler,
		content *ContentHandler,
		playlist *PlaylistHandler,
		subscription *SubscriptionHandler,
		profile *ProfileHandler,
		api *APIHandler,
		admin *AdminHandler,
	) *Handlers {
		return &Handlers{
			Auth:         auth,
			Media:        media,
			Content:      content,
			Playlist:     playlist,
			Subscription: subscription,
			Profile:      profile,
			API:          api,
			Admin:        admin,
		}
	}),
	fx.Invoke(RegisterRoutes),
)
