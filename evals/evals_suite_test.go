package evals_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestEvalsSuite(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Evals Suite")
}
