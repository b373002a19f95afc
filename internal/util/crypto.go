package util

import (
	"github.com/SeakMengs/DocCollect/internal/constant"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

func GenerateNChar(n int) (string, error) {
	id, err := gonanoid.New(n)
	if err != nil {
		return "", err
	}
	return id, nil
}

// Public identifier of a checklist, url safe
func GenerateSlug() (string, error) {
	return GenerateNChar(constant.ChecklistSlugLength)
}

// Secret granting manager access to a checklist
func GenerateAdminKey() (string, error) {
	return GenerateNChar(constant.ChecklistAdminKeyLength)
}
