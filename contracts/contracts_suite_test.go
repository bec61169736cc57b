package contracts_test

import (
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// artifactsDir holds the compiled FundMe project. The suites skip without
// it. Produce it with "npx hardhat compile" in the Solidity project and point
// FUNDME_ARTIFACTS at its artifacts/ directory.
var artifactsDir = os.Getenv("FUNDME_ARTIFACTS")

func TestContracts(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "FundMe Suite")
}
