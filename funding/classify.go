package funding

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/stellar/go-stellar-sdk/support/log"

	stellaridentity "github.com/marwen-abid/stellar-identity-go"
	"github.com/marwen-abid/stellar-identity-go/errors"
)

// alreadyExistsMarker appears in friendbot's detail text when the account exists.
const alreadyExistsMarker = "createAccountAlreadyExist"

// Classify interprets a friendbot response body. The schema is loose, so
// unknown fields are ignored:
//   - a string "detail" containing createAccountAlreadyExist -> AlreadyFunded
//   - otherwise any "successful" field, whatever its value -> Funded
//   - otherwise UNEXPECTED_RESPONSE with the raw JSON
//
// A body that is not JSON at all fails with MALFORMED_RESPONSE.
func Classify(ctx context.Context, body []byte) (stellaridentity.FundingResult, error) {
	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return failed(errors.NewFundingError(
			errors.MALFORMED_RESPONSE,
			"failed to parse JSON from friendbot response",
			err,
		).With("body", string(body)))
	}
	log.Ctx(ctx).Debugf("friendbot response %s", body)

	// Non-object JSON leaves res nil and falls through to UNEXPECTED_RESPONSE.
	res, _ := doc.(map[string]any)

	if detail, ok := res["detail"].(string); ok && strings.Contains(detail, alreadyExistsMarker) {
		log.Ctx(ctx).Warn("Account already exists")
		return stellaridentity.FundingResult{Status: stellaridentity.FundingAlreadyFunded}, nil
	}

	// Presence alone counts, so {"successful": false} is treated as funded.
	// TODO: decide whether a false "successful" should fail once friendbot's
	// response schema is pinned down.
	if _, ok := res["successful"]; ok {
		return stellaridentity.FundingResult{Status: stellaridentity.FundingFunded}, nil
	}

	return failed(errors.NewFundingError(
		errors.UNEXPECTED_RESPONSE,
		"improper friendbot response",
		nil,
	).With("body", strings.TrimSpace(string(body))))
}
