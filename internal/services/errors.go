package services

import (
	"errors"

	"gorm.io/gorm"
)

// translate turns a missing-row error into the domain error for that
// resource and passes everything else through.
func translate(err error, notFound error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return err
}
