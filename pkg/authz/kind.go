package authz

//go:generate go run github.com/dmarkham/enumer -type Kind -trimprefix Kind -transform lower -json -text -output kind.gen.go

// Kind names a resource type subject to authorization.
type Kind int

const (
	KindBlog Kind = iota
	KindProject
	KindSkill
	KindContact
	KindUser
)
