// Package api holds the request and response shapes of the HTTP surface.
// These types are shared by the handlers and every test tier.
package api

import (
	"time"

	"github.com/shopspring/decimal"
)

type ErrorResponse struct {
	Message   string    `json:"message"`
	RequestId string    `json:"requestId,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type ValidationError struct {
	Field string `json:"field"`
	Issue string `json:"issue"`
}

type ValidationErrorResponse struct {
	Message          string            `json:"message"`
	ValidationErrors []ValidationError `json:"validationErrors"`
	RequestId        string            `json:"requestId,omitempty"`
	Timestamp        time.Time         `json:"timestamp"`
}

type HealthcheckResponse struct {
	Status     string     `json:"status"`
	SystemInfo SystemInfo `json:"systemInfo"`
}

type SystemInfo struct {
	Version     string `json:"version"`
	Environment string `json:"environment"`
}

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type UserResponse struct {
	Id    int    `json:"id"`
	Email string `json:"email"`
	Admin bool   `json:"admin"`
}

type Seat struct {
	Id        int             `json:"id"`
	Row       string          `json:"row"`
	Number    int             `json:"number"`
	Type      string          `json:"type"`
	Price     decimal.Decimal `json:"price"`
	Available bool            `json:"available"`
	Blocked   bool            `json:"blocked"`
	Label     string          `json:"label"`
}

type SeatRow struct {
	Row   string `json:"row"`
	Seats []Seat `json:"seats"`
}

type SeatMapResponse struct {
	ShowId         int       `json:"showId"`
	MovieTitle     string    `json:"movieTitle"`
	VenueName      string    `json:"venueName"`
	ScreenName     string    `json:"screenName"`
	StartTime      time.Time `json:"startTime"`
	AvailableSeats int       `json:"availableSeats"`
	TotalSeats     int       `json:"totalSeats"`
	SeatRows       []SeatRow `json:"seatRows"`
}

type ShowResponse struct {
	Id             int             `json:"id"`
	MovieTitle     string          `json:"movieTitle"`
	VenueName      string          `json:"venueName"`
	ScreenName     string          `json:"screenName"`
	StartTime      time.Time       `json:"startTime"`
	BasePrice      decimal.Decimal `json:"basePrice"`
	AvailableSeats int             `json:"availableSeats"`
	TotalSeats     int             `json:"totalSeats"`
}

type ReserveSeatsRequest struct {
	SeatIdList  []int `json:"seatIdList" validate:"required,min=1,max=8,dive,gt=0"`
	HoldMinutes *int  `json:"holdMinutes,omitempty" validate:"omitempty,min=1,max=30"`
}

type ReserveSeatsResponse struct {
	HoldToken string    `json:"holdToken"`
	ExpiresAt time.Time `json:"expiresAt"`
	SeatIds   []int     `json:"seatIds"`
}

type ReleaseSeatsRequest struct {
	SeatIdList []int  `json:"seatIdList" validate:"required,min=1,max=8,dive,gt=0"`
	HoldToken  string `json:"holdToken" validate:"required,uuid4"`
}

type BookingSummaryRequest struct {
	ShowId     int    `json:"showId" validate:"required,gt=0"`
	SeatIdList []int  `json:"seatIdList" validate:"required,min=1,max=8,dive,gt=0"`
	PromoCode  string `json:"promoCode,omitempty" validate:"omitempty,alphanum,max=20"`
}

type PricingBreakdown struct {
	Subtotal       decimal.Decimal `json:"subtotal"`
	ConvenienceFee decimal.Decimal `json:"convenienceFee"`
	Taxes          decimal.Decimal `json:"taxes"`
	Discount       decimal.Decimal `json:"discount"`
	Total          decimal.Decimal `json:"total"`
	PromoCode      string          `json:"promoCode,omitempty"`
	TicketCount    int             `json:"ticketCount"`
}

type BookingSummaryResponse struct {
	ShowId  int              `json:"showId"`
	Seats   []Seat           `json:"seats"`
	Pricing PricingBreakdown `json:"pricing"`
}

type PaymentDetails struct {
	Method string `json:"method" validate:"required,payment_method"`

	CardNumber     string `json:"cardNumber,omitempty"`
	CardHolderName string `json:"cardHolderName,omitempty"`
	ExpiryMonth    int    `json:"expiryMonth,omitempty"`
	ExpiryYear     int    `json:"expiryYear,omitempty"`
	Cvv            string `json:"cvv,omitempty"`

	UpiId string `json:"upiId,omitempty"`

	WalletType  string `json:"walletType,omitempty"`
	WalletPhone string `json:"walletPhone,omitempty"`

	BankCode string `json:"bankCode,omitempty"`
}

type CreateBookingRequest struct {
	ShowId     int            `json:"showId" validate:"required,gt=0"`
	SeatIdList []int          `json:"seatIdList" validate:"required,min=1,max=8,dive,gt=0"`
	HoldToken  string         `json:"holdToken" validate:"required,uuid4"`
	PromoCode  string         `json:"promoCode,omitempty" validate:"omitempty,alphanum,max=20"`
	Payment    PaymentDetails `json:"payment" validate:"required"`
}

type PaymentReceipt struct {
	Status           string          `json:"status"`
	TransactionId    string          `json:"transactionId,omitempty"`
	GatewayOrderId   string          `json:"gatewayOrderId,omitempty"`
	GatewayPaymentId string          `json:"gatewayPaymentId,omitempty"`
	Method           string          `json:"method"`
	Amount           decimal.Decimal `json:"amount"`
	PaymentDate      time.Time       `json:"paymentDate"`
}

type BookingResponse struct {
	Id                   int              `json:"id"`
	BookingReference     string           `json:"bookingReference"`
	ShowId               int              `json:"showId"`
	MovieTitle           string           `json:"movieTitle"`
	VenueName            string           `json:"venueName"`
	StartTime            time.Time        `json:"startTime"`
	Seats                []Seat           `json:"seats"`
	Pricing              PricingBreakdown `json:"pricing"`
	Status               string           `json:"status"`
	PaymentStatus        string           `json:"paymentStatus"`
	Payment              PaymentReceipt   `json:"payment"`
	CanCancel            bool             `json:"canCancel"`
	CancellationDeadline time.Time        `json:"cancellationDeadline"`
	CreatedAt            time.Time        `json:"createdAt"`
}

type BookingSummary struct {
	Id               int             `json:"id"`
	BookingReference string          `json:"bookingReference"`
	MovieTitle       string          `json:"movieTitle"`
	VenueName        string          `json:"venueName"`
	StartTime        time.Time       `json:"startTime"`
	TotalAmount      decimal.Decimal `json:"totalAmount"`
	Status           string          `json:"status"`
	SeatCount        int             `json:"seatCount"`
	CreatedAt        time.Time       `json:"createdAt"`
}

type Metadata struct {
	CurrentPage  int `json:"currentPage"`
	FirstPage    int `json:"firstPage"`
	LastPage     int `json:"lastPage"`
	PageSize     int `json:"pageSize"`
	TotalRecords int `json:"totalRecords"`
}

type UserBookingsResponse struct {
	Bookings []BookingSummary `json:"bookings"`
	Metadata Metadata         `json:"metadata"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
