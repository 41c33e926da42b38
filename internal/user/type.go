package user

type ListInput struct {
	Filter Filter
}

type Filter struct {
	IDs      []string
	Role     string
	IsActive *bool
}
