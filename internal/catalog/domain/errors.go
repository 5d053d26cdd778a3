package catalog

import "errors"

// ErrAssetNotFound indicates a missing asset record.
var ErrAssetNotFound = errors.New("catalog: asset not found")

// ErrSensorNotFound indicates a missing sensor record.
var ErrSensorNotFound = errors.New("catalog: sensor not found")
