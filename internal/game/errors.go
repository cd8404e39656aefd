package game

import "errors"

var (
	ErrGameOver          = errors.New("game is over")
	ErrNoBankAccount     = errors.New("no bank account")
	ErrHasBankAccount    = errors.New("bank account already open")
	ErrNoCreditCard      = errors.New("no credit card")
	ErrHasCard           = errors.New("card already issued")
	ErrCreditDenied      = errors.New("credit application denied")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrUnknownSource     = errors.New("unknown payment source")
	ErrNoJob             = errors.New("no job")
	ErrAssetNotFound     = errors.New("asset not found")
	ErrInvalidAmount     = errors.New("amount must be positive")
)
