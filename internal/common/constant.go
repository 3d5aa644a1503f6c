package common

// DateLayout is the wire format of registration and progress-update dates.
// Existing remote documents store dates in this form.
const DateLayout = "2006-01-02"

// MinSecretLength is the minimum accepted secret length on registration.
const MinSecretLength = 5
