package constants

import "net/http"

// Kinds group error codes by how a caller should react to them.
const (
	KindInvalidArgument  = "InvalidArgument"
	KindPermissionDenied = "PermissionDenied"
	KindNotFound         = "NotFound"
	KindConflict         = "Conflict"
	KindUnauthenticated  = "Unauthenticated"
	KindInternalError    = "InternalError"
)

const (
	ErrCodeAdminPurchaseForbidden = "ADMIN_PURCHASE_FORBIDDEN"
	ErrCodeAccountBanned          = "ACCOUNT_BANNED"
	ErrCodeUnauthorized           = "UNAUTHORIZED"
	ErrCodeInvalidListingID       = "INVALID_LISTING_ID"
	ErrCodeListingNotFound        = "LISTING_NOT_FOUND"
	ErrCodeListingAlreadySold     = "LISTING_ALREADY_SOLD"
	ErrCodeListingNotAvailable    = "LISTING_NOT_AVAILABLE"
	ErrCodeOwnListingPurchase     = "OWN_LISTING_PURCHASE"
	ErrCodeInsufficientStock      = "INSUFFICIENT_STOCK"
	ErrCodeBuyerNotFound          = "BUYER_NOT_FOUND"
	ErrCodeInsufficientFunds      = "INSUFFICIENT_FUNDS"
	ErrCodeSellerNotFound         = "SELLER_NOT_FOUND"
	ErrCodeBuyerUpdateFailed      = "BUYER_UPDATE_FAILED"
	ErrCodeSellerUpdateFailed     = "SELLER_UPDATE_FAILED"
	ErrCodeListingUpdateFailed    = "LISTING_UPDATE_FAILED"
	ErrCodeInvalidRequestBody     = "INVALID_REQUEST_BODY"
	ErrCodeValidationFailed       = "VALIDATION_FAILED"
	ErrCodeInternalError          = "INTERNAL_ERROR"
)

const (
	ErrMsgAdminPurchaseForbidden = "Admin accounts cannot purchase items"
	ErrMsgAccountBanned          = "Account has been banned. Please contact support."
	ErrMsgUnauthorized           = "Could not validate credentials"
	ErrMsgInvalidListingID       = "Invalid listing ID"
	ErrMsgListingNotFound        = "Listing not found"
	ErrMsgListingAlreadySold     = "This item is already sold"
	ErrMsgListingNotAvailable    = "This listing is not available"
	ErrMsgOwnListingPurchase     = "You cannot purchase your own listing"
	ErrMsgInsufficientStock      = "Not enough stock available"
	ErrMsgBuyerNotFound          = "Buyer not found"
	ErrMsgInsufficientFunds      = "Insufficient funds"
	ErrMsgSellerNotFound         = "Seller not found"
	ErrMsgBuyerUpdateFailed      = "Failed to update buyer balance"
	ErrMsgSellerUpdateFailed     = "Failed to update seller balance"
	ErrMsgListingUpdateFailed    = "Failed to update listing"
	ErrMsgInvalidRequestBody     = "failed to parse request body"
	ErrMsgValidationFailed       = "request validation failed"
	ErrMsgInternalError          = "Internal server error"
)

// Formats for messages that carry the exact figures of the failed check.
const (
	ErrFmtInsufficientStock = "Not enough stock available. Only %d items left"
	ErrFmtInsufficientFunds = "Insufficient funds. You have $%s, but need $%s"
)

const MsgPurchaseCompleted = "Purchase completed successfully!"

type errorInfo struct {
	message string
	kind    string
}

var errorInfos = map[string]errorInfo{
	ErrCodeAdminPurchaseForbidden: {ErrMsgAdminPurchaseForbidden, KindPermissionDenied},
	ErrCodeAccountBanned:          {ErrMsgAccountBanned, KindPermissionDenied},
	ErrCodeUnauthorized:           {ErrMsgUnauthorized, KindUnauthenticated},
	ErrCodeInvalidListingID:       {ErrMsgInvalidListingID, KindInvalidArgument},
	ErrCodeListingNotFound:        {ErrMsgListingNotFound, KindNotFound},
	ErrCodeListingAlreadySold:     {ErrMsgListingAlreadySold, KindConflict},
	ErrCodeListingNotAvailable:    {ErrMsgListingNotAvailable, KindConflict},
	ErrCodeOwnListingPurchase:     {ErrMsgOwnListingPurchase, KindInvalidArgument},
	ErrCodeInsufficientStock:      {ErrMsgInsufficientStock, KindConflict},
	ErrCodeBuyerNotFound:          {ErrMsgBuyerNotFound, KindNotFound},
	ErrCodeInsufficientFunds:      {ErrMsgInsufficientFunds, KindConflict},
	ErrCodeSellerNotFound:         {ErrMsgSellerNotFound, KindNotFound},
	ErrCodeBuyerUpdateFailed:      {ErrMsgBuyerUpdateFailed, KindInternalError},
	ErrCodeSellerUpdateFailed:     {ErrMsgSellerUpdateFailed, KindInternalError},
	ErrCodeListingUpdateFailed:    {ErrMsgListingUpdateFailed, KindInternalError},
	ErrCodeInvalidRequestBody:     {ErrMsgInvalidRequestBody, KindInvalidArgument},
	ErrCodeValidationFailed:       {ErrMsgValidationFailed, KindInvalidArgument},
	ErrCodeInternalError:          {ErrMsgInternalError, KindInternalError},
}

func GetErrorMessage(code string) string {
	if info, exists := errorInfos[code]; exists {
		return info.message
	}
	return ErrMsgInternalError
}

func GetErrorKind(code string) string {
	if info, exists := errorInfos[code]; exists {
		return info.kind
	}
	return KindInternalError
}

func GetHTTPStatus(code string) int {
	switch GetErrorKind(code) {
	case KindInvalidArgument, KindConflict:
		return http.StatusBadRequest
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindPermissionDenied:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
