package dto

import (
	"github.com/elliotJHarding/transactions/internal/application/usecase/tagrule"
	"github.com/elliotJHarding/transactions/internal/domain/entity"
)

// CreateTagRequest represents the request body for tag creation.
type CreateTagRequest struct {
	Name         string  `json:"name" binding:"required"`
	Icon         string  `json:"icon,omitempty"`
	ParentID     *string `json:"parent_id,omitempty"`
	CategoryCode *string `json:"category_code,omitempty"`
}

// UpdateTagRequest represents the request body for tag update.
type UpdateTagRequest struct {
	Name          *string `json:"name,omitempty"`
	Icon          *string `json:"icon,omitempty"`
	ParentID      *string `json:"parent_id,omitempty"`
	ClearParent   bool    `json:"clear_parent,omitempty"`
	CategoryCode  *string `json:"category_code,omitempty"`
	ClearCategory bool    `json:"clear_category,omitempty"`
}

// TagResponse represents a tag in API responses.
type TagResponse struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Icon         string        `json:"icon,omitempty"`
	ParentID     *string       `json:"parent_id,omitempty"`
	CategoryCode *string       `json:"category_code,omitempty"`
	Global       bool          `json:"global"`
	Children     []TagResponse `json:"children,omitempty"`
}

// CategoryResponse represents a reporting category.
type CategoryResponse struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// CreateRuleRequest represents the request body for rule creation.
type CreateRuleRequest struct {
	TagID      string `json:"tag_id" binding:"required"`
	Expression string `json:"expression"`
}

// UpdateRuleRequest represents the request body for rule update.
type UpdateRuleRequest struct {
	TagID      *string `json:"tag_id,omitempty"`
	Expression *string `json:"expression,omitempty"`
}

// RuleResponse represents a tag rule in API responses.
type RuleResponse struct {
	ID         string `json:"id"`
	TagID      string `json:"tag_id"`
	TagName    string `json:"tag_name,omitempty"`
	Expression string `json:"expression"`
	Inert      bool   `json:"inert"`
}

// RuleMutationResponse is returned after a rule is created or updated.
type RuleMutationResponse struct {
	Rule               RuleResponse `json:"rule"`
	TransactionsTagged int64        `json:"transactions_tagged"`
}

// ApplyRulesResponse is returned by the rule backfill.
type ApplyRulesResponse struct {
	TransactionsTagged int64 `json:"transactions_tagged"`
}

// ToTagResponse converts a Tag entity to its DTO.
func ToTagResponse(t *entity.Tag) TagResponse {
	return TagResponse{
		ID:           t.ID.String(),
		Name:         t.Name,
		Icon:         t.Icon,
		ParentID:     uuidString(t.ParentID),
		CategoryCode: t.CategoryCode,
		Global:       t.UserID == nil,
	}
}

// ToTagTreeResponses converts top-level tags with their children.
func ToTagTreeResponses(tags []*entity.TagWithChildren) []TagResponse {
	out := make([]TagResponse, len(tags))
	for i, t := range tags {
		resp := ToTagResponse(t.Tag)
		for _, child := range t.Children {
			resp.Children = append(resp.Children, ToTagResponse(child))
		}
		out[i] = resp
	}
	return out
}

// ToCategoryResponses converts categories to their DTOs.
func ToCategoryResponses(categories []*entity.Category) []CategoryResponse {
	out := make([]CategoryResponse, len(categories))
	for i, c := range categories {
		out[i] = CategoryResponse{Code: c.Code, Name: c.Name}
	}
	return out
}

// ToRuleResponse converts a TagRule entity to its DTO.
func ToRuleResponse(r *entity.TagRule) RuleResponse {
	return RuleResponse{
		ID:         r.ID.String(),
		TagID:      r.TagID.String(),
		Expression: r.Expression,
	}
}

// ToRuleResponses converts the rule listing to its DTOs.
func ToRuleResponses(rules []*tagrule.RuleOutput) []RuleResponse {
	out := make([]RuleResponse, len(rules))
	for i, r := range rules {
		resp := ToRuleResponse(r.Rule)
		resp.TagName = r.TagName
		resp.Inert = r.Inert
		out[i] = resp
	}
	return out
}
