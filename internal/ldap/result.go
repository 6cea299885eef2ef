package ldap

import (
	"github.com/KilimcininKorOglu/asnw/internal/ber"
)

// tagReferral is the context tag of LDAPResult.referral.
const tagReferral = 3

// Result is the LDAPResult body shared by most responses:
//
//	LDAPResult ::= SEQUENCE {
//	     resultCode         ENUMERATED,
//	     matchedDN          LDAPDN,
//	     diagnosticMessage  LDAPString,
//	     referral           [3] Referral OPTIONAL }
type Result struct {
	ResultCode        ResultCode
	MatchedDN         string
	DiagnosticMessage string
	Referral          []string
}

// NewSuccessResult returns a success Result.
func NewSuccessResult() Result {
	return Result{ResultCode: ResultSuccess}
}

// NewErrorResult returns a Result with the given code and message.
func NewErrorResult(code ResultCode, message string) Result {
	return Result{ResultCode: code, DiagnosticMessage: message}
}

// NewErrorResultWithDN returns a Result that also names the matched DN.
func NewErrorResultWithDN(code ResultCode, matchedDN, message string) Result {
	return Result{ResultCode: code, MatchedDN: matchedDN, DiagnosticMessage: message}
}

func (r Result) validate() error {
	return checkDN("matchedDN", r.MatchedDN)
}

// encodeFields writes the LDAPResult components without the enclosing
// SEQUENCE so responses that extend it can append their own fields.
func (r Result) encodeFields(w *ber.Writer) error {
	if err := w.WriteEnumerated(int64(r.ResultCode)); err != nil {
		return err
	}
	if err := writeString(w, r.MatchedDN); err != nil {
		return err
	}
	if err := writeString(w, r.DiagnosticMessage); err != nil {
		return err
	}
	if len(r.Referral) == 0 {
		return nil
	}
	tag := ber.ContextTag(tagReferral)
	if err := w.PushSequenceTag(tag); err != nil {
		return err
	}
	if err := writeStrings(w, r.Referral); err != nil {
		return err
	}
	return w.PopSequenceTag(tag)
}

// encodeResult writes r as the body of the response with the given type.
func encodeResult(w *ber.Writer, op OperationType, r Result) error {
	if err := w.PushSequenceTag(op.Tag()); err != nil {
		return err
	}
	if err := r.encodeFields(w); err != nil {
		return err
	}
	return w.PopSequenceTag(op.Tag())
}

// SearchResultDone ends a search.
type SearchResultDone struct{ Result }

func (r *SearchResultDone) Type() OperationType { return ApplicationSearchResultDone }
func (r *SearchResultDone) Validate() error     { return r.validate() }

func (r *SearchResultDone) EncodeTo(w *ber.Writer) error {
	if err := r.Validate(); err != nil {
		return err
	}
	return encodeResult(w, r.Type(), r.Result)
}

// ModifyResponse answers a ModifyRequest.
type ModifyResponse struct{ Result }

func (r *ModifyResponse) Type() OperationType { return ApplicationModifyResponse }
func (r *ModifyResponse) Validate() error     { return r.validate() }

func (r *ModifyResponse) EncodeTo(w *ber.Writer) error {
	if err := r.Validate(); err != nil {
		return err
	}
	return encodeResult(w, r.Type(), r.Result)
}

// AddResponse answers an AddRequest.
type AddResponse struct{ Result }

func (r *AddResponse) Type() OperationType { return ApplicationAddResponse }
func (r *AddResponse) Validate() error     { return r.validate() }

func (r *AddResponse) EncodeTo(w *ber.Writer) error {
	if err := r.Validate(); err != nil {
		return err
	}
	return encodeResult(w, r.Type(), r.Result)
}

// DeleteResponse answers a DelRequest.
type DeleteResponse struct{ Result }

func (r *DeleteResponse) Type() OperationType { return ApplicationDelResponse }
func (r *DeleteResponse) Validate() error     { return r.validate() }

func (r *DeleteResponse) EncodeTo(w *ber.Writer) error {
	if err := r.Validate(); err != nil {
		return err
	}
	return encodeResult(w, r.Type(), r.Result)
}

// ModifyDNResponse answers a ModifyDNRequest.
type ModifyDNResponse struct{ Result }

func (r *ModifyDNResponse) Type() OperationType { return ApplicationModifyDNResponse }
func (r *ModifyDNResponse) Validate() error     { return r.validate() }

func (r *ModifyDNResponse) EncodeTo(w *ber.Writer) error {
	if err := r.Validate(); err != nil {
		return err
	}
	return encodeResult(w, r.Type(), r.Result)
}

// CompareResponse answers a CompareRequest with compareTrue or
// compareFalse on success.
type CompareResponse struct{ Result }

func (r *CompareResponse) Type() OperationType { return ApplicationCompareResponse }
func (r *CompareResponse) Validate() error     { return r.validate() }

func (r *CompareResponse) EncodeTo(w *ber.Writer) error {
	if err := r.Validate(); err != nil {
		return err
	}
	return encodeResult(w, r.Type(), r.Result)
}
