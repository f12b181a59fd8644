package Note

// AnonymousAuthor 匿名笔记的作者展示哨兵值
const AnonymousAuthor = "Anonymous"

// ResolveDisplayAuthor 作者展示解析器（纯函数）
// 优先级固定：匿名 > 公开昵称 > 邮箱
// 匿名路径绝不暴露作者身份，调用方只保留作者ID用于权限判断
func ResolveDisplayAuthor(isAnonymous bool, aka string, akaPublic bool, email string) string {
	if isAnonymous {
		return AnonymousAuthor
	}
	if aka != "" && akaPublic {
		return aka
	}
	return email
}
