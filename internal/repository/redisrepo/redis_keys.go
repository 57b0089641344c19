package redisrepo

import "fmt"

const (
	POST_COMMENTS_KEY         = "post:%d-comments:v%d"    // <postID>, <version>
	POST_COMMENTS_VERSION_KEY = "post:%d-comments-version" // <postID>
	PROFILE_KEY               = "profile:%s"               // <userID>
	REVOKED_TOKEN_KEY         = "jwt:revoked:%s"           // <tokenID>
)

func PostCommentsKey(postID int64, version int64) string {
	return fmt.Sprintf(POST_COMMENTS_KEY, postID, version)
}

func PostCommentsVersionKey(postID int64) string {
	return fmt.Sprintf(POST_COMMENTS_VERSION_KEY, postID)
}

func ProfileKey(userID string) string {
	return fmt.Sprintf(PROFILE_KEY, userID)
}

func RevokedTokenKey(tokenID string) string {
	return fmt.Sprintf(REVOKED_TOKEN_KEY, tokenID)
}
