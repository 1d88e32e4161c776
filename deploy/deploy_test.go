package deploy

import (
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/smartcontract/manifest"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/nef"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/stretchr/testify/require"
)

func validPrm() Prm {
	c := CommonDeployPrm{
		NEF:      nef.File{Script: []byte{0x01}},
		Manifest: manifest.Manifest{Name: "x"},
	}
	return Prm{
		ReputationContract: c,
		ListingContract:    c,
		VotingContract:     c,
		CommentContract:    c,
		CredentialContract: c,
	}
}

func TestPrmValidate(t *testing.T) {
	prm := validPrm()
	// chain-independent checks fire first
	require.ErrorContains(t, prm.Validate(), "missing logger")

	prm.ListingContract.NEF.Script = nil
	err := prm.Validate()
	require.ErrorIs(t, err, errMissingNEF)
	require.ErrorContains(t, err, nameListing)

	prm = validPrm()
	prm.VotingContract.Manifest.Name = ""
	require.ErrorContains(t, prm.Validate(), "missing manifest name")
}

func TestContractHashDeterminism(t *testing.T) {
	sender := util.Uint160{1, 2, 3}
	prm := CommonDeployPrm{
		NEF:      nef.File{Script: []byte{0x01}},
		Manifest: manifest.Manifest{Name: "EduProof Listing"},
	}

	h1 := contractHash(sender, prm)
	h2 := contractHash(sender, prm)
	require.Equal(t, h1, h2)

	other := contractHash(util.Uint160{4, 5, 6}, prm)
	require.NotEqual(t, h1, other)
}
