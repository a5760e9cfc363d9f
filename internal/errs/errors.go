package errs

import "errors"

// Common sentinel errors for cross-layer signaling.
var (
    ErrNotFound = errors.New("not_found")
    ErrInvalid  = errors.New("invalid")
    // ErrUnknownKind indicates an account kind tag outside the enumerated set.
    ErrUnknownKind = errors.New("unknown_account_kind")
    // ErrBadSnapshot indicates a snapshot payload that cannot be restored
    // (corrupt bytes or an unsupported schema version).
    ErrBadSnapshot = errors.New("bad_snapshot")

    // Posting rules enforced by the account domain.
    ErrOverdrawn    = errors.New("overdrawn")
    ErrDailyLimit   = errors.New("daily_limit")
    ErrMonthlyLimit = errors.New("monthly_limit")
    ErrOutOfOrder   = errors.New("out_of_order")
    // ErrInterestApplied indicates interest and fees were already assessed
    // for the month in question.
    ErrInterestApplied = errors.New("interest_applied")
)
