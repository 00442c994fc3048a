// Package authz はタスク・担当者・コメント間の所有不変条件を判定する。
//
// この判定ロジックは取得済みエンティティのスナップショットに対する純粋関数であり、
// I/Oを一切行わない。エンティティの取得と永続化は呼び出し側サービスの責務。
// 状態を持たないため、複数ゴルーチンからロックなしで同時に呼び出せる。
package authz

import "github.com/hitoshi/taskman/internal/model"

// CanAssignManager はrequesterがtodoにcandidateを担当者として
// 登録できるかを判定する。許可ならnil、拒否なら原因別のAPIErrorを返す。
//
// 拒否条件:
//   - OWNER_MISSING: todoの作成者情報が欠落している（一貫性のあるストアでは発生しない）
//   - NOT_OWNER: requesterがtodoの作成者ではない
//   - CANDIDATE_IS_OWNER: candidateがtodoの作成者自身である（自己登録の禁止）
func CanAssignManager(requester model.Identity, todo *model.Todo, candidate *model.User) *model.APIError {
	if todo.User == nil {
		return model.NewOwnerMissingError()
	}
	if requester.UserID != todo.User.ID {
		return model.NewNotOwnerError()
	}
	if candidate.ID == todo.User.ID {
		return model.NewCandidateIsOwnerError()
	}
	return nil
}

// CanRemoveManager はrequesterUserIDのユーザーがtodoからmanagerを
// 削除できるかを判定する。許可ならnil、拒否なら原因別のAPIErrorを返す。
//
// 拒否条件:
//   - OWNER_MISSING / NOT_OWNER: CanAssignManagerと対称
//   - MANAGER_NOT_IN_TODO: managerがリクエストで指定されたtodoに属していない
//     （存在確認だけでなくタスクとの相互参照を検証する）
func CanRemoveManager(requesterUserID int64, todo *model.Todo, manager *model.Manager) *model.APIError {
	if todo.User == nil {
		return model.NewOwnerMissingError()
	}
	if requesterUserID != todo.User.ID {
		return model.NewNotOwnerError()
	}
	if manager.TodoID != todo.ID {
		return model.NewManagerNotInTodoError()
	}
	return nil
}

// CanAuthorComment はrequesterがタスクにコメントを投稿できるかを判定する。
// managersにはタスクの全担当者を渡す。作成者は作成時に担当者として登録されるため、
// 作成者の特別扱いは不要。許可ならnil、拒否ならNOT_MANAGERを返す。
func CanAuthorComment(requester model.Identity, managers []*model.Manager) *model.APIError {
	for _, m := range managers {
		if m.UserID == requester.UserID {
			return nil
		}
	}
	return model.NewNotManagerError()
}

// ValidateRole は権限文字列を検証してRoleを返す。
// サインアップ時の権限指定と管理者による権限変更の両方で使用する単一の検証経路。
// 無効な値にはINVALID_ROLEを返す。
func ValidateRole(role string) (model.Role, *model.APIError) {
	r, err := model.ParseRole(role)
	if err != nil {
		if apiErr, ok := err.(*model.APIError); ok {
			return "", apiErr
		}
		return "", model.NewInvalidRoleError(role)
	}
	return r, nil
}
