package irc

import "fmt"

// ResponseNumber is the tagged union over three-digit numeric server
// replies (spec.md §3/§4.C), covering RFC 1459/2812 numerics plus the
// three structured cases (353 NAMES, 332 TOPIC, 333 TOPIC who/time)
// and a bounded error-code set.
type ResponseNumber interface {
	isResponseNumber()
}

// simpleReply is the shape shared by every numeric whose payload is
// just the trailing text, unchanged. Each RFC reply below is still its
// own exported type (a tagged union, not one shared struct) so callers
// can switch on concrete type; simpleReply backs their common method.
type simpleReply struct{ Text string }

func (simpleReply) isResponseNumber() {}

// RplWelcome is numeric 001.
type RplWelcome struct{ simpleReply }

// RplYourHost is numeric 002.
type RplYourHost struct{ simpleReply }

// RplCreated is numeric 003.
type RplCreated struct{ simpleReply }

// RplMyInfo is numeric 004.
type RplMyInfo struct{ simpleReply }

// RplBounce is numeric 005 (ISUPPORT; token parsing out of scope).
type RplBounce struct{ simpleReply }

type RplTraceLink struct{ simpleReply }
type RplTraceConnecting struct{ simpleReply }
type RplTraceHandshake struct{ simpleReply }
type RplTraceUnknown struct{ simpleReply }
type RplTraceOperator struct{ simpleReply }
type RplTraceUser struct{ simpleReply }
type RplTraceServer struct{ simpleReply }
type RplTraceService struct{ simpleReply }
type RplTraceNewType struct{ simpleReply }
type RplTraceLog struct{ simpleReply }

type RplStatsLinkInfo struct{ simpleReply }
type RplStatsCommands struct{ simpleReply }
type RplStatsCLine struct{ simpleReply }
type RplStatsNLine struct{ simpleReply }
type RplStatsILine struct{ simpleReply }
type RplStatsKLine struct{ simpleReply }
type RplStatsQLine struct{ simpleReply }
type RplStatsYLine struct{ simpleReply }
type RplEndOfStats struct{ simpleReply }

type RplUserModeIs struct{ simpleReply }

type RplServiceInfo struct{ simpleReply }
type RplEndOfService struct{ simpleReply }

type RplStatsULine struct{ simpleReply }
type RplStatsVLine struct{ simpleReply }
type RplStatsXLine struct{ simpleReply }

type RplStatsLLine struct{ simpleReply }
type RplStatsUptime struct{ simpleReply }
type RplStatsOLine struct{ simpleReply }
type RplStatsHLine struct{ simpleReply }
type RplStatsPLine struct{ simpleReply }
type RplStatsDLine struct{ simpleReply }
type RplStatsTLine struct{ simpleReply }
type RplHighestConnCount struct{ simpleReply }

type RplLUserClient struct{ simpleReply }
type RplLUserOp struct{ simpleReply }
type RplLUserUnknown struct{ simpleReply }
type RplLUserChannels struct{ simpleReply }
type RplLUserMe struct{ simpleReply }
type RplAdminMe struct{ simpleReply }
type RplAdminLoc1 struct{ simpleReply }
type RplAdminLoc2 struct{ simpleReply }
type RplAdminEmail struct{ simpleReply }

type RplTraceLog2 struct{ simpleReply }
type RplEndOfLUser struct{ simpleReply }
type RplTryAgain struct{ simpleReply }
type RplLocalUsers struct{ simpleReply }
type RplGlobalUsers struct{ simpleReply }

// RplNone is numeric 300 (reserved).
type RplNone struct{ simpleReply }

type RplAway struct{ simpleReply }
type RplUserHost struct{ simpleReply }
type RplIson struct{ simpleReply }
type RplText struct{ simpleReply }
type RplUnAway struct{ simpleReply }
type RplNowAway struct{ simpleReply }

type RplWhoisUser struct{ simpleReply }
type RplWhoisServer struct{ simpleReply }
type RplWhoisOperator struct{ simpleReply }
type RplWhowasUser struct{ simpleReply }
type RplEndOfWho struct{ simpleReply }
type RplWhoisIdle struct{ simpleReply }
type RplWhoisIdleTime struct{ simpleReply }
type RplEndOfWhois struct{ simpleReply }
type RplWhoisChannels struct{ simpleReply }

type RplListStart struct{ simpleReply }
type RplList struct{ simpleReply }
type RplListEnd struct{ simpleReply }

type RplChannelModeIs struct{ simpleReply }
type RplUniqueOpIs struct{ simpleReply }

// RplNoTopic is numeric 331.
type RplNoTopic struct{ simpleReply }

// RplTopic is numeric 332: the current topic text.
type RplTopic struct{ simpleReply }

// RplTopicWhoTime is numeric 333: who set the topic, and when.
type RplTopicWhoTime struct{ simpleReply }

type RplInvite struct{ simpleReply }
type RplSummonAnswer struct{ simpleReply }
type RplInviteList struct{ simpleReply }
type RplEndOfInviteList struct{ simpleReply }
type RplExceptionList struct{ simpleReply }
type RplEndOfExceptionList struct{ simpleReply }

type RplVersion struct{ simpleReply }
type RplWhoReply struct{ simpleReply }

// RplNameReply is numeric 353 (NAMES): the trailing text split on
// ASCII whitespace, order preserved, prefix characters (@, +) kept
// verbatim on each entry.
type RplNameReply struct{ Names []string }

func (RplNameReply) isResponseNumber() {}

type RplWhoReplyExtended struct{ simpleReply }
type RplKillDone struct{ simpleReply }
type RplClosing struct{ simpleReply }
type RplLinks struct{ simpleReply }
type RplLinks2 struct{ simpleReply }
type RplEndOfLinks struct{ simpleReply }
type RplEndOfNames struct{ simpleReply }
type RplBanList struct{ simpleReply }
type RplEndOfBanList struct{ simpleReply }
type RplEndOfWhowas struct{ simpleReply }

type RplInfo struct{ simpleReply }
type RplMOTD struct{ simpleReply }
type RplMOTDStart struct{ simpleReply }
type RplEndOfInfo struct{ simpleReply }
type RplMOTDStart2 struct{ simpleReply }
type RplEndOfMOTD struct{ simpleReply }
type RplYouAreOper struct{ simpleReply }
type RplRehashing struct{ simpleReply }
type RplYouAreService struct{ simpleReply }
type RplTime struct{ simpleReply }
type RplUsersStart struct{ simpleReply }
type RplUsers struct{ simpleReply }
type RplEndOfUsers struct{ simpleReply }
type RplNoUsers struct{ simpleReply }

// RplErr is the catch-all for numerics in the error-code set (spec.md
// §3): {400..502, 524..525, 691, 696, 723, 902, 904..907}.
type RplErr struct {
	Code uint16
	Text string
}

func (RplErr) isResponseNumber() {}

// RplUnknown is any numeric not named above and not in the error set.
type RplUnknown struct {
	Code uint16
	Text string
}

func (RplUnknown) isResponseNumber() {}

func simple(text string) simpleReply { return simpleReply{Text: text} }

// isErrorCode reports whether n falls in the error-reply range, per
// original_source/clown-core/src/response.rs's match arm.
func isErrorCode(n uint16) bool {
	switch {
	case n >= 400 && n <= 502:
		return true
	case n >= 524 && n <= 525:
		return true
	case n == 691, n == 696, n == 723, n == 902:
		return true
	case n >= 904 && n <= 907:
		return true
	}
	return false
}

// buildReply maps a numeric code and its trailing text to the concrete
// ResponseNumber variant. Per spec.md §4.C, absent trailing becomes the
// empty string rather than suppressing the reply.
func buildReply(code uint16, trailing string, hasTrailing bool) ResponseNumber {
	_ = hasTrailing // spec.md: absence does not suppress the reply

	if code == 353 {
		return RplNameReply{Names: splitASCIIWhitespace(trailing)}
	}
	if isErrorCode(code) {
		return RplErr{Code: code, Text: trailing}
	}

	switch code {
	case 1:
		return RplWelcome{simple(trailing)}
	case 2:
		return RplYourHost{simple(trailing)}
	case 3:
		return RplCreated{simple(trailing)}
	case 4:
		return RplMyInfo{simple(trailing)}
	case 5:
		return RplBounce{simple(trailing)}
	case 200:
		return RplTraceLink{simple(trailing)}
	case 201:
		return RplTraceConnecting{simple(trailing)}
	case 202:
		return RplTraceHandshake{simple(trailing)}
	case 203:
		return RplTraceUnknown{simple(trailing)}
	case 204:
		return RplTraceOperator{simple(trailing)}
	case 205:
		return RplTraceUser{simple(trailing)}
	case 206:
		return RplTraceServer{simple(trailing)}
	case 208:
		return RplTraceService{simple(trailing)}
	case 209:
		return RplTraceNewType{simple(trailing)}
	case 210:
		return RplTraceLog{simple(trailing)}
	case 211:
		return RplStatsLinkInfo{simple(trailing)}
	case 212:
		return RplStatsCommands{simple(trailing)}
	case 213:
		return RplStatsCLine{simple(trailing)}
	case 214:
		return RplStatsNLine{simple(trailing)}
	case 215:
		return RplStatsILine{simple(trailing)}
	case 216:
		return RplStatsKLine{simple(trailing)}
	case 217:
		return RplStatsQLine{simple(trailing)}
	case 218:
		return RplStatsYLine{simple(trailing)}
	case 219:
		return RplEndOfStats{simple(trailing)}
	case 221:
		return RplUserModeIs{simple(trailing)}
	case 231:
		return RplServiceInfo{simple(trailing)}
	case 232:
		return RplEndOfService{simple(trailing)}
	case 233:
		return RplStatsULine{simple(trailing)}
	case 234:
		return RplStatsVLine{simple(trailing)}
	case 235:
		return RplStatsXLine{simple(trailing)}
	case 241:
		return RplStatsLLine{simple(trailing)}
	case 242:
		return RplStatsUptime{simple(trailing)}
	case 243:
		return RplStatsOLine{simple(trailing)}
	case 244:
		return RplStatsHLine{simple(trailing)}
	case 245:
		return RplStatsPLine{simple(trailing)}
	case 246:
		return RplStatsDLine{simple(trailing)}
	case 247:
		return RplStatsTLine{simple(trailing)}
	case 250:
		return RplHighestConnCount{simple(trailing)}
	case 251:
		return RplLUserClient{simple(trailing)}
	case 252:
		return RplLUserOp{simple(trailing)}
	case 253:
		return RplLUserUnknown{simple(trailing)}
	case 254:
		return RplLUserChannels{simple(trailing)}
	case 255:
		return RplLUserMe{simple(trailing)}
	case 256:
		return RplAdminMe{simple(trailing)}
	case 257:
		return RplAdminLoc1{simple(trailing)}
	case 258:
		return RplAdminLoc2{simple(trailing)}
	case 259:
		return RplAdminEmail{simple(trailing)}
	case 261:
		return RplTraceLog2{simple(trailing)}
	case 262:
		return RplEndOfLUser{simple(trailing)}
	case 263:
		return RplTryAgain{simple(trailing)}
	case 265:
		return RplLocalUsers{simple(trailing)}
	case 266:
		return RplGlobalUsers{simple(trailing)}
	case 300:
		return RplNone{simple(trailing)}
	case 301:
		return RplAway{simple(trailing)}
	case 302:
		return RplUserHost{simple(trailing)}
	case 303:
		return RplIson{simple(trailing)}
	case 304:
		return RplText{simple(trailing)}
	case 305:
		return RplUnAway{simple(trailing)}
	case 306:
		return RplNowAway{simple(trailing)}
	case 311:
		return RplWhoisUser{simple(trailing)}
	case 312:
		return RplWhoisServer{simple(trailing)}
	case 313:
		return RplWhoisOperator{simple(trailing)}
	case 314:
		return RplWhowasUser{simple(trailing)}
	case 315:
		return RplEndOfWho{simple(trailing)}
	case 316:
		return RplWhoisIdle{simple(trailing)}
	case 317:
		return RplWhoisIdleTime{simple(trailing)}
	case 318:
		return RplEndOfWhois{simple(trailing)}
	case 319:
		return RplWhoisChannels{simple(trailing)}
	case 321:
		return RplListStart{simple(trailing)}
	case 322:
		return RplList{simple(trailing)}
	case 323:
		return RplListEnd{simple(trailing)}
	case 324:
		return RplChannelModeIs{simple(trailing)}
	case 325:
		return RplUniqueOpIs{simple(trailing)}
	case 331:
		return RplNoTopic{simple(trailing)}
	case 332:
		return RplTopic{simple(trailing)}
	case 333:
		return RplTopicWhoTime{simple(trailing)}
	case 341:
		return RplInvite{simple(trailing)}
	case 342:
		return RplSummonAnswer{simple(trailing)}
	case 346:
		return RplInviteList{simple(trailing)}
	case 347:
		return RplEndOfInviteList{simple(trailing)}
	case 348:
		return RplExceptionList{simple(trailing)}
	case 349:
		return RplEndOfExceptionList{simple(trailing)}
	case 351:
		return RplVersion{simple(trailing)}
	case 352:
		return RplWhoReply{simple(trailing)}
	case 354:
		return RplWhoReplyExtended{simple(trailing)}
	case 361:
		return RplKillDone{simple(trailing)}
	case 362:
		return RplClosing{simple(trailing)}
	case 363:
		return RplLinks{simple(trailing)}
	case 364:
		return RplLinks2{simple(trailing)}
	case 365:
		return RplEndOfLinks{simple(trailing)}
	case 366:
		return RplEndOfNames{simple(trailing)}
	case 367:
		return RplBanList{simple(trailing)}
	case 368:
		return RplEndOfBanList{simple(trailing)}
	case 369:
		return RplEndOfWhowas{simple(trailing)}
	case 371:
		return RplInfo{simple(trailing)}
	case 372:
		return RplMOTD{simple(trailing)}
	case 373:
		return RplMOTDStart{simple(trailing)}
	case 374:
		return RplEndOfInfo{simple(trailing)}
	case 375:
		return RplMOTDStart2{simple(trailing)}
	case 376:
		return RplEndOfMOTD{simple(trailing)}
	case 381:
		return RplYouAreOper{simple(trailing)}
	case 382:
		return RplRehashing{simple(trailing)}
	case 383:
		return RplYouAreService{simple(trailing)}
	case 391:
		return RplTime{simple(trailing)}
	case 392:
		return RplUsersStart{simple(trailing)}
	case 393:
		return RplUsers{simple(trailing)}
	case 394:
		return RplEndOfUsers{simple(trailing)}
	case 395:
		return RplNoUsers{simple(trailing)}
	default:
		return RplUnknown{Code: code, Text: trailing}
	}
}

func splitASCIIWhitespace(s string) []string {
	var out []string
	start := -1
	for i := 0; i < len(s); i++ {
		if isASCIISpace(s[i]) {
			if start >= 0 {
				out = append(out, s[start:i])
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		out = append(out, s[start:])
	}
	return out
}

func isASCIISpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\v' || b == '\f' || b == '\r'
}

// String implements fmt.Stringer for debug logging of numeric replies.
func (r RplErr) String() string     { return fmt.Sprintf("Err(%d, %q)", r.Code, r.Text) }
func (r RplUnknown) String() string { return fmt.Sprintf("Unknown(%d, %q)", r.Code, r.Text) }
