package routes

import "github.com/gin-gonic/gin"

// PublicApi registers the guest-facing JSON endpoints.
func PublicApi(rg *gin.RouterGroup) {
	rg.GET("/gifts", ListGifts)
	rg.POST("/gifts/:id/reserve", ReserveGift)
	rg.POST("/gifts/:id/contribute", ContributeToGift)
	rg.POST("/reservations/:id/cancel", CancelReservation)
	rg.POST("/contributions", CreateGeneralContribution)
	rg.POST("/rsvp", CreateRsvp)
	rg.GET("/pix/qr.png", PixQrCode)
}

// AdminApi registers the admin JSON endpoints. Everything except login
// sits behind the session gate.
func AdminApi(rg *gin.RouterGroup) {
	rg.POST("/login", AdminLogin)

	authed := rg.Group("", AdminGate())
	{
		authed.POST("/logout", AdminLogout)

		authed.GET("/items", AdminListItems)
		authed.POST("/items", AdminCreateItem)
		authed.POST("/items/upload", AdminUploadImage)
		authed.POST("/items/bulk", AdminBulkImport)
		authed.PUT("/items/:id", AdminUpdateItem)
		authed.DELETE("/items/:id", AdminDeleteItem)

		authed.POST("/moderation/cancel-reservation", AdminCancelReservation)
		authed.POST("/moderation/delete-contribution", AdminDeleteContribution)

		authed.GET("/rsvp", AdminListRsvps)

		authed.GET("/event", AdminGetEvent)
		authed.PUT("/event", AdminUpdateEvent)
	}
}
