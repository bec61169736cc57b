package deployer

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/tranvictor/fundme/deployments"
	"github.com/tranvictor/fundme/util/explorers"
)

type VerifyInput struct {
	// Name is the artifact the contract was deployed from.
	Name       string
	Address    common.Address
	Args       []any
	Deployment *deployments.Deployment
}

type Verifier interface {
	Verify(ctx context.Context, in VerifyInput) error
}

type sourceVerifier interface {
	Verify(ctx context.Context, r explorers.VerifyRequest) error
}

// ExplorerVerifier publishes contract sources on an Etherscan-like
// explorer.
type ExplorerVerifier struct {
	Explorer  sourceVerifier
	Artifacts ArtifactSource
	// Compilers are the solc versions the project is configured with. The
	// artifact must have been built by one of them.
	Compilers []string
}

func (v *ExplorerVerifier) Verify(ctx context.Context, in VerifyInput) error {
	artifact, err := v.Artifacts.Get(in.Name)
	if err != nil {
		return err
	}
	info, err := v.Artifacts.BuildInfo(artifact)
	if err != nil {
		return err
	}
	if len(v.Compilers) > 0 && !slices.Contains(v.Compilers, info.SolcVersion) {
		return fmt.Errorf(
			"%s was compiled with solc %s, configured compilers are %s",
			in.Name, info.SolcVersion, strings.Join(v.Compilers, ", "),
		)
	}
	constructorArgs := []byte{}
	if in.Deployment != nil {
		constructorArgs = in.Deployment.ConstructorArgs
	} else if constructorArgs, err = artifact.ABI.Pack("", in.Args...); err != nil {
		return err
	}
	return v.Explorer.Verify(ctx, explorers.VerifyRequest{
		Address:         in.Address.Hex(),
		ContractName:    artifact.FullyQualifiedName(),
		CompilerVersion: info.SolcLongVersion,
		SourceCode:      string(info.Input),
		ConstructorArgs: strings.TrimPrefix(hexutil.Encode(constructorArgs), "0x"),
	})
}
