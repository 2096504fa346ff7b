package object

import "errors"

var ErrInvalidSheet = errors.New("object: invalid sprite sheet layout")
