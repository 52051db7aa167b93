package http

import "laundrydesk.com/app/internal/shared/apperr"

var handlerNotFound = apperr.NotFoundErr("Not found.")
