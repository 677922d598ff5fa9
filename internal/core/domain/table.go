package domain

import "time"

// Table is a physical dining table. QRCode holds the canonical menu URL
// encoded into the printed QR sticker.
type Table struct {
	ID        string    `json:"id" bson:"_id"`
	Number    int       `json:"number" bson:"number"`
	Capacity  int       `json:"capacity" bson:"capacity"`
	QRCode    string    `json:"qr_code" bson:"qr_code"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// Menu is the public view served to a table's QR code.
type Menu struct {
	Table      Table      `json:"table"`
	Categories []Category `json:"categories"`
	Products   []Product  `json:"products"`
	Orders     []Order    `json:"orders"`
}
