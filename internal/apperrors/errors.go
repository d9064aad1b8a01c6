package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates the authenticated user lacks permission for the operation.
var ErrForbidden = errors.New("forbidden")

// ErrRefreshTokenExpired indicates the stored refresh token is past its expiry.
var ErrRefreshTokenExpired = errors.New("refresh token expired")

// ErrInvalidRate indicates a commission rate outside [0,100], or a nonzero rate
// supplied for an admin account.
var ErrInvalidRate = errors.New("invalid commission rate")

// ErrInactiveCampaign indicates an order operation against a missing, deleted
// or out-of-window campaign.
var ErrInactiveCampaign = errors.New("campaign is not active")

// ErrRateOverride indicates an attempt to change an order's frozen commission
// rate snapshot during an edit. The snapshot is written once, at order creation.
var ErrRateOverride = errors.New("commission rate snapshot cannot be changed")

// ErrSelfDelete indicates an admin tried to delete their own account.
var ErrSelfDelete = errors.New("cannot delete your own account")
