package solana

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
)

var (
	// CPIAuthoritySeed derives the address the governance program signs with when it invokes
	// other programs.
	CPIAuthoritySeed = []byte("cpi_authority")

	// GovernanceSeed derives the governance state account, which is also the default
	// administrative authority of programs handed over to governance.
	GovernanceSeed = []byte("governance")
)

// FindCPIAuthorityPDA returns the CPI authority of the given governance program.
func FindCPIAuthorityPDA(governanceProgramID solana.PublicKey) (solana.PublicKey, error) {
	return findPDA(governanceProgramID, CPIAuthoritySeed)
}

// FindGovernancePDA returns the governance state account of the given governance program.
func FindGovernancePDA(governanceProgramID solana.PublicKey) (solana.PublicKey, error) {
	return findPDA(governanceProgramID, GovernanceSeed)
}

func findPDA(programID solana.PublicKey, seeds ...[]byte) (solana.PublicKey, error) {
	pda, _, err := solana.FindProgramAddress(seeds, programID)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("unable to find %q pda for %s: %w", seeds, programID, err)
	}

	return pda, nil
}
