package contracts

import (
	_ "embed"
	"errors"
	"fmt"
	"sort"

	"github.com/erth-network/anml-cli/common/check"
	"github.com/erth-network/anml-cli/core/types"
	"gopkg.in/yaml.v3"
)

type Name string

const (
	Registration Name = "REGISTRATION"
	Erth         Name = "ERTH"
	Anml         Name = "ANML"
	AnmlPool     Name = "ANML_POOL"
)

//go:embed directory.yaml
var directoryYAML []byte

var defaultDirectory *Directory

func init() {
	var err error
	defaultDirectory, err = Parse(directoryYAML)
	check.PanicIfErr(err)
}

type Contract struct {
	Address  string `yaml:"address"`
	CodeHash string `yaml:"hash"`
}

// Directory maps well-known contract names to their deployment. It is read-only after Parse.
type Directory struct {
	codeID              uint64
	registrationAddress string
	contracts           map[Name]Contract
}

type directoryFile struct {
	Defaults struct {
		CodeID              uint64 `yaml:"code_id"`
		RegistrationAddress string `yaml:"registration_address"`
	} `yaml:"defaults"`
	Contracts map[Name]Contract `yaml:"contracts"`
}

var ErrInvalidDirectory = errors.New("invalid contract directory")

// Default returns the directory compiled into the binary.
func Default() *Directory {
	return defaultDirectory
}

func Parse(data []byte) (*Directory, error) {
	var f directoryFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDirectory, err)
	}
	if f.Defaults.CodeID == 0 {
		return nil, fmt.Errorf("%w: defaults.code_id is required", ErrInvalidDirectory)
	}
	if _, err := types.ParseAddress(f.Defaults.RegistrationAddress); err != nil {
		return nil, fmt.Errorf("%w: defaults.registration_address: %w", ErrInvalidDirectory, err)
	}
	for _, name := range []Name{Registration, Erth, Anml, AnmlPool} {
		c, ok := f.Contracts[name]
		if !ok {
			return nil, fmt.Errorf("%w: missing contract %s", ErrInvalidDirectory, name)
		}
		if _, err := types.ParseAddress(c.Address); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidDirectory, name, err)
		}
		if len(c.CodeHash) != 64 {
			return nil, fmt.Errorf("%w: %s: code hash must be 64 hex characters", ErrInvalidDirectory, name)
		}
	}
	return &Directory{
		codeID:              f.Defaults.CodeID,
		registrationAddress: f.Defaults.RegistrationAddress,
		contracts:           f.Contracts,
	}, nil
}

func (d *Directory) Lookup(name Name) (Contract, bool) {
	c, ok := d.contracts[name]
	return c, ok
}

// MustLookup is for names that Parse guarantees to be present.
func (d *Directory) MustLookup(name Name) Contract {
	c, ok := d.Lookup(name)
	check.PanicIfNotf(ok, "contract %s is not in the directory", name)
	return c
}

// CodeID is the code id instantiate and migrate fall back to.
func (d *Directory) CodeID() uint64 {
	return d.codeID
}

// RegistrationAddress is the registration authority written into init and config payloads.
func (d *Directory) RegistrationAddress() string {
	return d.registrationAddress
}

func (d *Directory) Names() []Name {
	names := make([]Name, 0, len(d.contracts))
	for n := range d.contracts {
		names = append(names, n)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}
