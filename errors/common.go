package errors

func InvalidParamsErr(err error) error {
	return E(Invalid, "invalid params", err)
}

func InvalidBodyErr(err error) error {
	return E(Invalid, "invalid request body", err)
}

func ValidationFailedErr(err error) error {
	return E(Invalid, "validation failed", err)
}

func EmptyParamErr(field string) error {
	ve := ValidationErrs()
	ve.Add(field, "cannot be empty")
	return E(Invalid, "validation failed", ve.Err())
}

// EmptyTransactionErr flags an analyze request that carried no transaction.
func EmptyTransactionErr() error {
	return E(Invalid, "no transaction data provided", nil)
}

// StoreErr wraps a failed call against a backing store (redis, mongo).
func StoreErr(op string, err error) error {
	return E(Unavailable, "store operation "+op+" failed", err)
}
