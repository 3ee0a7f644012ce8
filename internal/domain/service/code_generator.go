package service

// CodeGenerator produces candidate short codes. Uniqueness is not guaranteed here; the
// persistence layer rejects collisions.
type CodeGenerator interface {
	Generate() (string, error)
}
