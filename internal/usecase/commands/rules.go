package commands

import (
	"context"
	"fmt"

	"universe-api/internal/domain/universe"
	"universe-api/internal/infra"
	"universe-api/internal/pkg/config"
	"universe-api/internal/usecase/shared"
)

// maxAncestorDepth bounds the parent-chain walk. A chain this deep is
// either corrupt data or a cycle the visited set missed; both are refused.
const maxAncestorDepth = 32

// Rules is the cross-module validator: checks that need reads beyond the
// command itself (user directory, quotas, sibling slugs, parent chains,
// template existence). Like structural validation it accumulates messages;
// an unexpected read failure is returned as an error instead.
type Rules struct {
	reads shared.CommandReads
	quota config.QuotaConfig
}

func NewRules(reads shared.CommandReads, quota config.QuotaConfig) *Rules {
	return &Rules{reads: reads, quota: quota}
}

// ValidateCreation checks actor, quota, slug uniqueness, template and
// parent references for a new resource of the given kind.
func (r *Rules) ValidateCreation(ctx context.Context, cmd CreateInstanceCommand, kind universe.Kind) ([]string, error) {
	var violations []string

	user, err := r.reads.UserByID(ctx, cmd.Actor.UserID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return []string{"user not found"}, nil
		}
		return nil, err
	}
	if !user.IsActive {
		violations = append(violations, "user account is inactive")
	}

	limit := r.limitFor(user, kind)
	count, err := r.reads.CountActiveResources(ctx, cmd.Actor.UserID, kind)
	if err != nil {
		return nil, err
	}
	if count >= limit {
		violations = append(violations, fmt.Sprintf("active %s quota of %d reached", kind, limit))
	}

	if cmd.Slug != "" {
		taken, err := r.slugTaken(ctx, cmd.Actor.UserID, kind, cmd.Slug, 0)
		if err != nil {
			return nil, err
		}
		if taken {
			violations = append(violations, "slug already in use")
		}
	}

	if cmd.TemplateID != nil {
		msgs, err := r.checkTemplateRef(ctx, cmd.Actor, *cmd.TemplateID)
		if err != nil {
			return nil, err
		}
		violations = append(violations, msgs...)
	}

	if cmd.ParentID != nil {
		msgs, err := r.checkParentChain(ctx, cmd.Actor, *cmd.ParentID)
		if err != nil {
			return nil, err
		}
		violations = append(violations, msgs...)
	}

	return violations, nil
}

// ValidateAccess resolves the target and checks the actor may mutate it.
// A resource in another project is reported as not found rather than
// forbidden, so its existence does not leak.
func (r *Rules) ValidateAccess(ctx context.Context, actor shared.Actor, targetID int64) (*shared.ResourceSnapshot, []string, error) {
	res, err := r.reads.ResourceByID(ctx, targetID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, []string{"instance not found"}, nil
		}
		return nil, nil, err
	}
	if res.ProjectID != actor.ProjectID {
		return nil, []string{"instance not found"}, nil
	}
	if res.OwnerID != actor.UserID {
		return res, []string{"instance belongs to another user"}, nil
	}
	return res, nil, nil
}

// ValidateUpdate refuses mutations of archived resources.
func (r *Rules) ValidateUpdate(res *shared.ResourceSnapshot) []string {
	if res.Status == universe.StatusArchived {
		return []string{"archived instances cannot be updated"}
	}
	return nil
}

// ValidateDeletion refuses to archive a resource that still has active
// children, and treats an already archived target as a no-op violation.
func (r *Rules) ValidateDeletion(ctx context.Context, res *shared.ResourceSnapshot) ([]string, error) {
	if res.Status == universe.StatusArchived {
		return []string{"instance is already archived"}, nil
	}
	children, err := r.reads.CountActiveChildren(ctx, res.ID)
	if err != nil {
		return nil, err
	}
	if children > 0 {
		return []string{fmt.Sprintf("instance still has %d active children", children)}, nil
	}
	return nil, nil
}

// ValidateSharing refuses share-token minting for archived resources.
func (r *Rules) ValidateSharing(res *shared.ResourceSnapshot) []string {
	if res.Status == universe.StatusArchived {
		return []string{"archived instances cannot be shared"}
	}
	return nil
}

func (r *Rules) limitFor(user *shared.UserSnapshot, kind universe.Kind) int {
	if kind == universe.KindTemplate {
		if user.MaxActiveTemplates > 0 {
			return user.MaxActiveTemplates
		}
		return r.quota.MaxActiveTemplates
	}
	if user.MaxActiveInstances > 0 {
		return user.MaxActiveInstances
	}
	return r.quota.MaxActiveInstances
}

// slugTaken reports whether another resource of the same owner and kind
// already uses slug. selfID skips the resource being updated.
func (r *Rules) slugTaken(ctx context.Context, ownerID int64, kind universe.Kind, slug string, selfID int64) (bool, error) {
	existing, err := r.reads.ResourceBySlug(ctx, ownerID, kind, slug)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return false, nil
		}
		return false, err
	}
	return existing.ID != selfID, nil
}

func (r *Rules) checkTemplateRef(ctx context.Context, actor shared.Actor, templateID int64) ([]string, error) {
	tpl, err := r.reads.ResourceByID(ctx, templateID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return []string{"template not found"}, nil
		}
		return nil, err
	}
	var violations []string
	if tpl.Kind != universe.KindTemplate {
		violations = append(violations, "referenced resource is not a template")
	}
	if tpl.ProjectID != actor.ProjectID {
		return []string{"template not found"}, nil
	}
	if tpl.OwnerID != actor.UserID && !tpl.IsPublic && !tpl.IsShared {
		violations = append(violations, "template is not available")
	}
	if tpl.Status == universe.StatusArchived {
		violations = append(violations, "template is archived")
	}
	return violations, nil
}

// checkParentChain validates the parent reference and walks the ancestor
// chain with a visited set, refusing cycles and over-deep hierarchies.
func (r *Rules) checkParentChain(ctx context.Context, actor shared.Actor, parentID int64) ([]string, error) {
	visited := map[int64]struct{}{}
	current := parentID
	for depth := 0; ; depth++ {
		if depth >= maxAncestorDepth {
			return []string{"parent chain exceeds the maximum depth"}, nil
		}
		if _, seen := visited[current]; seen {
			return []string{"parent chain contains a cycle"}, nil
		}
		visited[current] = struct{}{}

		parent, err := r.reads.ResourceByID(ctx, current)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return []string{"parent instance not found"}, nil
			}
			return nil, err
		}
		if parent.ProjectID != actor.ProjectID {
			return []string{"parent instance not found"}, nil
		}
		if parent.OwnerID != actor.UserID {
			return []string{"parent instance belongs to another user"}, nil
		}
		if parent.Kind != universe.KindInstance {
			return []string{"parent must be an instance"}, nil
		}
		if !parent.IsActive() {
			return []string{"parent instance is not active"}, nil
		}

		if parent.ParentID == nil {
			return nil, nil
		}
		current = *parent.ParentID
	}
}
