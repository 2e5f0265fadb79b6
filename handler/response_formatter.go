package handler

type GenericEntity interface {
	ToPublicFormat() any
}

// Admins get the stored record, everyone else the public format
func responseFormatter[I GenericEntity](data I, roles []string) any {
	if roles == nil {
		return data.ToPublicFormat()
	}

	for _, role := range roles {
		if role == "admin" {
			return data
		}
	}

	return data.ToPublicFormat()
}

func responseArrFormatter[I GenericEntity](data []I, roles []string) []any {
	res := []any{}
	for _, v := range data {
		res = append(res, responseFormatter(v, roles))
	}
	return res
}
