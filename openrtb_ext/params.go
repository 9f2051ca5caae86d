package openrtb_ext

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ParamName identifies one request-side params object validated by schema.
type ParamName string

const (
	// ParamFilter is the venue filter inside an inventory request.
	ParamFilter ParamName = "filter"
)

var paramMap = map[string]ParamName{
	"filter": ParamFilter,
}

// GetParamName returns the ParamName for the given string, if it exists.
// The second argument is true if the name was valid, and false otherwise.
func GetParamName(name string) (ParamName, bool) {
	paramName, ok := paramMap[name]
	return paramName, ok
}

// The VenueParamValidator is used to enforce the shape of request-side DOOH
// params. We rely on JSON-schemas so the contract is published to callers
// through the params endpoint rather than buried in validation code.
type VenueParamValidator interface {
	Validate(name ParamName, params json.RawMessage) error
	// Schema returns the JSON schema used to perform validation.
	Schema(name ParamName) string
}

// NewVenueParamsValidator makes a VenueParamValidator, assuming all the
// necessary schema files exist in the filesystem. This will error if, for
// example, a param object gets added but no JSON schema is written for it.
func NewVenueParamsValidator(schemaDirectory string) (VenueParamValidator, error) {
	fileInfos, err := os.ReadDir(schemaDirectory)
	if err != nil {
		return nil, fmt.Errorf("Failed to read JSON schemas from directory %s. %v", schemaDirectory, err)
	}
	filesystem := http.Dir(schemaDirectory)

	schemaContents := make(map[ParamName]string, len(fileInfos))
	schemas := make(map[ParamName]*gojsonschema.Schema, len(fileInfos))
	for _, fileInfo := range fileInfos {
		paramName, isValid := GetParamName(strings.TrimSuffix(fileInfo.Name(), ".json"))
		if !isValid {
			return nil, fmt.Errorf("File %s/%s does not match a valid ParamName.", schemaDirectory, fileInfo.Name())
		}

		schemaLoader := gojsonschema.NewReferenceLoaderFileSystem(fmt.Sprintf("file:///%s", fileInfo.Name()), filesystem)
		loadedSchema, err := gojsonschema.NewSchema(schemaLoader)
		if err != nil {
			return nil, fmt.Errorf("Failed to load json schema at %s/%s: %v", schemaDirectory, fileInfo.Name(), err)
		}

		fileBytes, err := os.ReadFile(fmt.Sprintf("%s/%s", schemaDirectory, fileInfo.Name()))
		if err != nil {
			return nil, fmt.Errorf("Failed to read file %s/%s: %v", schemaDirectory, fileInfo.Name(), err)
		}

		schemas[paramName] = loadedSchema
		schemaContents[paramName] = string(fileBytes)
	}

	for name := range paramMap {
		if _, ok := schemas[ParamName(name)]; !ok {
			return nil, fmt.Errorf("Param %s has no json schema in %s", name, schemaDirectory)
		}
	}

	return &venueParamValidator{
		schemaContents: schemaContents,
		parsedSchemas:  schemas,
	}, nil
}

type venueParamValidator struct {
	schemaContents map[ParamName]string
	parsedSchemas  map[ParamName]*gojsonschema.Schema
}

func (validator *venueParamValidator) Validate(name ParamName, params json.RawMessage) error {
	schema, ok := validator.parsedSchemas[name]
	if !ok {
		return fmt.Errorf("unknown param name: %s", name)
	}
	result, err := schema.Validate(gojsonschema.NewBytesLoader(params))
	if err != nil {
		return err
	}
	if !result.Valid() {
		errBuilder := bytes.Buffer{}
		for _, err := range result.Errors() {
			errBuilder.WriteString(err.String())
			errBuilder.WriteString("\n")
		}
		return fmt.Errorf("%s", errBuilder.String())
	}
	return nil
}

func (validator *venueParamValidator) Schema(name ParamName) string {
	return validator.schemaContents[name]
}
